package repository

import "errors"

// Sentinel errors shared by all store implementations. Application services
// translate these into their own error vocabulary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrInsufficientStock = errors.New("insufficient stock")
)
