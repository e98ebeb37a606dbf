package models

import "errors"

// Custom errors
var (
	ErrInvalidOdds       = errors.New("invalid odds value")
	ErrMalformedSnapshot = errors.New("malformed team snapshot")
	ErrOutOfRange        = errors.New("probability out of range")
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key violation")
	ErrInvalidID         = errors.New("invalid ID format")
)
