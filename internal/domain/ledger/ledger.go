// Package ledger assembles a show with its billable children and derives
// the totals that the totals view and the invoice sync both present.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
)

// ShowReader loads shows.
type ShowReader interface {
	Get(ctx context.Context, id string) (*show.Show, error)
}

// TimeEntryLister lists a show's time entries ordered by date.
type TimeEntryLister interface {
	ListByShow(ctx context.Context, showID string) ([]timeentry.TimeEntry, error)
}

// ExpenseLister lists a show's expenses ordered by date.
type ExpenseLister interface {
	ListByShow(ctx context.Context, showID string) ([]expense.Expense, error)
}

// Ledger is a show with everything billed against it.
type Ledger struct {
	Show        show.Show             `json:"show"`
	TimeEntries []timeentry.TimeEntry `json:"time_entries"`
	Expenses    []expense.Expense     `json:"expenses"`
	Totals      billing.Totals        `json:"totals"`
}

// Compute derives totals for a show from its children.
func Compute(sh show.Show, entries []timeentry.TimeEntry, expenses []expense.Expense) billing.Totals {
	return billing.ComputeTotals(timeentry.Lines(entries), expense.Amounts(expenses), sh.TaxRate)
}

// Service loads ledgers.
type Service struct {
	shows    ShowReader
	entries  TimeEntryLister
	expenses ExpenseLister
	logger   *slog.Logger
}

// NewService creates a new ledger service.
func NewService(shows ShowReader, entries TimeEntryLister, expenses ExpenseLister, logger *slog.Logger) *Service {
	return &Service{shows: shows, entries: entries, expenses: expenses, logger: logger}
}

// Load reads a show and its children and computes totals.
func (s *Service) Load(ctx context.Context, showID string) (*Ledger, error) {
	sh, err := s.shows.Get(ctx, showID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("loading time entries: %w", err)
	}
	expenses, err := s.expenses.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	if entries == nil {
		entries = []timeentry.TimeEntry{}
	}
	if expenses == nil {
		expenses = []expense.Expense{}
	}

	return &Ledger{
		Show:        *sh,
		TimeEntries: entries,
		Expenses:    expenses,
		Totals:      Compute(*sh, entries, expenses),
	}, nil
}

// Totals computes a show's totals.
func (s *Service) Totals(ctx context.Context, showID string) (billing.Totals, error) {
	l, err := s.Load(ctx, showID)
	if err != nil {
		return billing.Totals{}, err
	}
	return l.Totals, nil
}
