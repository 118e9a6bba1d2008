package receipt

import "errors"

var (
	// ErrReceiptNotFound indicates the receipt doesn't exist.
	ErrReceiptNotFound = errors.New("receipt not found")
	// ErrInvalidInput indicates invalid receipt input.
	ErrInvalidInput = errors.New("invalid receipt input")
)
