package floor

import "errors"

var (
	ErrNotFound      = errors.New("session not found")
	ErrSessionClosed = errors.New("session already completed")
	ErrValidation    = errors.New("validation error")
)
