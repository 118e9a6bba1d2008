package invoice

import (
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Show is the show header carried in a sync request.
type Show struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	ClientName string          `json:"clientName"`
	JobNumber  string          `json:"jobNumber,omitempty"`
	TaxRate    decimal.Decimal `json:"hstRate"`
	DocumentID string          `json:"documentId,omitempty"`
}

// TimeEntry is one hours line in a sync request.
type TimeEntry struct {
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	LocationType string          `json:"locationType"`
	WorkType     string          `json:"workType"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	HourlyRate   decimal.Decimal `json:"hourlyRate"`
}

// Expense is one expense line in a sync request.
type Expense struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Payload is everything a sync writes for one show.
type Payload struct {
	Show        Show        `json:"show"`
	TimeEntries []TimeEntry `json:"timeEntries"`
	Expenses    []Expense   `json:"expenses"`
}

// PayloadFromLedger builds a sync payload from stored records, keeping the
// ledger's date ordering.
func PayloadFromLedger(l *ledger.Ledger) Payload {
	p := Payload{
		Show: Show{
			ID:         l.Show.ID,
			Title:      l.Show.Title,
			ClientName: l.Show.ClientName,
			JobNumber:  l.Show.JobNumber,
			TaxRate:    l.Show.TaxRate,
			DocumentID: l.Show.DocumentID,
		},
		TimeEntries: make([]TimeEntry, 0, len(l.TimeEntries)),
		Expenses:    make([]Expense, 0, len(l.Expenses)),
	}
	for _, e := range l.TimeEntries {
		p.TimeEntries = append(p.TimeEntries, TimeEntry{
			Date:         e.Date,
			Description:  e.Description,
			LocationType: string(e.LocationType),
			WorkType:     string(e.WorkType),
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
			HourlyRate:   e.HourlyRate,
		})
	}
	for _, e := range l.Expenses {
		p.Expenses = append(p.Expenses, Expense{
			Date:        e.Date,
			Category:    string(e.Category),
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	return p
}
