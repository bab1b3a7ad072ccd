package errors

import "errors"

var (
	ErrNotFound = errors.New("admin not found")

	ErrEmailTaken = errors.New("email already registered")
)
