package order

import "errors"

var (
	ErrNotFound        = errors.New("order not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session already completed")
	ErrItemUnavailable = errors.New("menu item not available")
	ErrValidation      = errors.New("validation error")
	ErrNotItemRow      = errors.New("not an item order")
)
