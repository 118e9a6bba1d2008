package expense

import "errors"

var (
	// ErrExpenseNotFound indicates the expense doesn't exist.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidInput indicates invalid expense input.
	ErrInvalidInput = errors.New("invalid expense input")
)
