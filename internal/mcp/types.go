package mcp

import (
	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/rpggio/showbill/internal/invoice"
)

// Money fields are decimal strings such as "60" or "12.50".

type ListShowsParams struct {
	Status string `json:"status,omitempty" jsonschema:"Draft or Closed; empty lists all"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type CreateShowParams struct {
	Title      string `json:"title,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	JobNumber  string `json:"job_number,omitempty"`
	TaxRate    string `json:"tax_rate,omitempty" jsonschema:"tax rate as a fraction, default 0.13"`
}

type GetShowTotalsParams struct {
	ShowID string `json:"show_id"`
}

type ShowTotals struct {
	ShowID      string                `json:"show_id"`
	Title       string                `json:"title"`
	TimeEntries int                   `json:"time_entries"`
	Expenses    int                   `json:"expenses"`
	Totals      billing.DisplayTotals `json:"totals"`
}

type AddTimeEntryParams struct {
	ShowID       string `json:"show_id"`
	Date         string `json:"date,omitempty" jsonschema:"YYYY-MM-DD, default today"`
	Description  string `json:"description,omitempty"`
	LocationType string `json:"location_type,omitempty"`
	WorkType     string `json:"work_type,omitempty"`
	StartTime    string `json:"start_time,omitempty" jsonschema:"HH:MM, 24-hour clock"`
	EndTime      string `json:"end_time,omitempty" jsonschema:"HH:MM, 24-hour clock"`
	HourlyRate   string `json:"hourly_rate,omitempty"`
}

type AddExpenseParams struct {
	ShowID      string `json:"show_id"`
	Date        string `json:"date,omitempty" jsonschema:"YYYY-MM-DD, default today"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

type SyncShowParams struct {
	ShowID string `json:"show_id"`
	Mode   string `json:"mode,omitempty" jsonschema:"document (default) or log"`
}

type SyncShowResult struct {
	invoice.Result
	Mode invoice.Mode `json:"mode"`
}
