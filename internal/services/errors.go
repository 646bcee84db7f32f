package services

import "errors"

// Common service errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidState   = errors.New("invalid state transition")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrAmountRequired = errors.New("a positive amount is required")
	ErrDateRequired   = errors.New("a valid date is required")
)
