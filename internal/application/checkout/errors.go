package checkout

import "errors"

var (
	ErrEmptyOrder        = errors.New("Order must contain at least one item")
	ErrCheckoutFailed    = errors.New("Failed to process checkout")
	ErrOrderNotFound     = errors.New("Order not found")
	ErrInvalidStatus     = errors.New("Invalid status")
	ErrInvalidTransition = errors.New("Invalid status transition")
)
