// Package invoice exports a show's time entries and expenses to a
// spreadsheet, either by appending to a flat log or by filling a copy of a
// templated invoice document.
package invoice

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates missing credentials or document identifiers.
	ErrNotConfigured = errors.New("invoice sync not configured")
	// ErrSyncInProgress indicates another sync for the same show holds the lock.
	ErrSyncInProgress = errors.New("invoice sync already in progress")
	// ErrTooManyRows indicates a table does not fit its template region.
	ErrTooManyRows = errors.New("too many rows for invoice table")
	// ErrInvalidMode indicates an unknown sync mode.
	ErrInvalidMode = errors.New("invalid sync mode")
)

// ValueRange is a block of cell values addressed in A1 notation.
type ValueRange struct {
	Range  string
	Values [][]any
}

// Spreadsheets is the remote spreadsheet provider.
type Spreadsheets interface {
	CopyDocument(ctx context.Context, templateID, name string) (string, error)
	BatchWrite(ctx context.Context, docID string, data []ValueRange) error
	BatchClear(ctx context.Context, docID string, ranges []string) error
	Append(ctx context.Context, docID, rng string, rows [][]any) error
}

// Mode selects the sync protocol.
type Mode string

const (
	ModeDocument Mode = "document"
	ModeLog      Mode = "log"
)

// ParseMode maps a query value to a Mode; empty selects ModeDocument.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDocument:
		return ModeDocument, nil
	case ModeLog:
		return ModeLog, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Result is the outcome of a sync.
type Result struct {
	OK         bool   `json:"ok"`
	DocumentID string `json:"documentId,omitempty"`
	URL        string `json:"url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DocumentURL is the browser link for a spreadsheet document.
func DocumentURL(docID string) string {
	return "https://docs.google.com/spreadsheets/d/" + docID + "/edit"
}
