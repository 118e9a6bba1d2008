package show

import "errors"

var (
	// ErrShowNotFound indicates the show doesn't exist.
	ErrShowNotFound = errors.New("show not found")
	// ErrInvalidInput indicates invalid show input.
	ErrInvalidInput = errors.New("invalid show input")
)
