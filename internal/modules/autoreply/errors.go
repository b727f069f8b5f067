package autoreply

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrSettingsMissing = errors.New("ai_settings_missing")
)
