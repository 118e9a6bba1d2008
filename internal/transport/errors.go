package transport

import (
	"errors"
	"net/http"

	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errBadRequest marks request decoding failures.
var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, show.ErrInvalidInput),
		errors.Is(err, timeentry.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, receipt.ErrInvalidInput),
		errors.Is(err, invoice.ErrInvalidMode),
		errors.Is(err, invoice.ErrTooManyRows):
		return http.StatusBadRequest
	case errors.Is(err, show.ErrShowNotFound),
		errors.Is(err, timeentry.ErrTimeEntryNotFound),
		errors.Is(err, expense.ErrExpenseNotFound),
		errors.Is(err, receipt.ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.Is(err, invoice.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, invoice.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	renderError(w, r, status, err)
}
