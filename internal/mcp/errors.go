package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
)

// APIError is the body of a failed tool call.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool error codes. Unknown errors map to INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, show.ErrShowNotFound):
		return &APIError{Code: "SHOW_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_shows for valid IDs"}
	case errors.Is(err, show.ErrInvalidInput),
		errors.Is(err, timeentry.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, invoice.ErrInvalidMode):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, invoice.ErrNotConfigured):
		return &APIError{Code: "NOT_CONFIGURED", Message: err.Error(), RecoveryHint: "Set the Google credentials and document IDs"}
	case errors.Is(err, invoice.ErrSyncInProgress):
		return &APIError{Code: "SYNC_IN_PROGRESS", Message: err.Error(), RecoveryHint: "Retry after the running sync finishes"}
	case errors.Is(err, invoice.ErrTooManyRows):
		return &APIError{Code: "TOO_MANY_ROWS", Message: err.Error(), RecoveryHint: "Use sync mode log"}
	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Code: "TIMEOUT", Message: err.Error(), RecoveryHint: "Retry; the document is reused"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}

func invalidInput(format string, args ...any) *APIError {
	return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...)}
}
