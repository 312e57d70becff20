package service

import "errors"

// Sentinel errors the handlers map onto HTTP responses.
var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock for requested sale")
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrAlreadyClockedIn  = errors.New("user already has an active time log")
	ErrNoActiveSession   = errors.New("user has no active time log")
)
