package survey

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("survey_not_found")
	ErrInactive       = errors.New("survey_inactive")
	ErrValidation     = errors.New("validation_failed")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrHasResponses   = errors.New("survey_has_responses")
)
