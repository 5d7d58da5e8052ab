package domain

import "errors"

var (
	// ErrEmptyCart rejects order creation without any selected product
	ErrEmptyCart = errors.New("select at least one product")

	// ErrEmptyOrder rejects edits that would leave the order without items
	ErrEmptyOrder = errors.New("order must contain at least one product")

	// ErrOrderNotFound means the referenced order no longer exists
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus rejects unknown order statuses
	ErrInvalidStatus = errors.New("invalid order status")
)
