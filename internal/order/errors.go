package order

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to order")
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidTransition = errors.New("order cannot change to that status at this stage")
)
