package show

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a show.
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusClosed Status = "Closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusClosed
}

const (
	DefaultTitle      = "Untitled Show"
	DefaultClientName = "Unknown Client"
)

// DefaultTaxRate applies when a show is created without a tax rate.
var DefaultTaxRate = decimal.RequireFromString("0.13")

// Show is a single job billed to one client.
type Show struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	ClientName string          `json:"client_name"`
	JobNumber  string          `json:"job_number,omitempty"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Status     Status          `json:"status"`
	DocumentID string          `json:"document_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ListOptions filters and pages show listings.
type ListOptions struct {
	Status Status
	Limit  int
	Offset int
}
