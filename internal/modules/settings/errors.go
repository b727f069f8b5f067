package settings

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrValidation     = errors.New("validation_failed")
	ErrNotFound       = errors.New("not_found")
)
