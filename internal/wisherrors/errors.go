// Package wisherrors defines the sentinel errors shared by the store and
// service layers. Handlers map them to HTTP status codes with errors.Is.
package wisherrors

import "errors"

// Storage-level errors.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyReserved = errors.New("item already reserved")
	ErrNotReserved     = errors.New("item not reserved")
	ErrEmailTaken      = errors.New("email already registered")
)

// Business rule errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotOwner     = errors.New("not the item owner")
	ErrOwnItem      = errors.New("cannot reserve your own item")
)
