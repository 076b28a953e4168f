package reservation

import "errors"

var (
	ErrNotFound       = errors.New("reservation not found")
	ErrAlreadySettled = errors.New("reservation already seated or cancelled")
)
