package mocks

import (
	"context"
	"time"

	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/stretchr/testify/mock"
)

// ShowRepository is a mock for show.Repository.
type ShowRepository struct {
	mock.Mock
}

func (m *ShowRepository) Create(ctx context.Context, s *show.Show) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShowRepository) Get(ctx context.Context, id string) (*show.Show, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*show.Show); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShowRepository) List(ctx context.Context, opts show.ListOptions) ([]show.Show, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]show.Show); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShowRepository) Search(ctx context.Context, query string, limit int) ([]show.Show, error) {
	args := m.Called(ctx, query, limit)
	if list, ok := args.Get(0).([]show.Show); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShowRepository) Update(ctx context.Context, s *show.Show) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShowRepository) Touch(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *ShowRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ShowToucher is a mock for the child services' show dependency.
type ShowToucher struct {
	mock.Mock
}

func (m *ShowToucher) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TimeEntryRepository is a mock for timeentry.Repository.
type TimeEntryRepository struct {
	mock.Mock
}

func (m *TimeEntryRepository) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *TimeEntryRepository) Get(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*timeentry.TimeEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) ListByShow(ctx context.Context, showID string) ([]timeentry.TimeEntry, error) {
	args := m.Called(ctx, showID)
	if list, ok := args.Get(0).([]timeentry.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) Update(ctx context.Context, e *timeentry.TimeEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExpenseRepository is a mock for expense.Repository.
type ExpenseRepository struct {
	mock.Mock
}

func (m *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *ExpenseRepository) Get(ctx context.Context, id string) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*expense.Expense); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) ListByShow(ctx context.Context, showID string) ([]expense.Expense, error) {
	args := m.Called(ctx, showID)
	if list, ok := args.Get(0).([]expense.Expense); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *ExpenseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ReceiptRepository is a mock for receipt.Repository.
type ReceiptRepository struct {
	mock.Mock
}

func (m *ReceiptRepository) Create(ctx context.Context, r *receipt.Receipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReceiptRepository) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*receipt.Receipt); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReceiptRepository) ListByShow(ctx context.Context, showID string) ([]receipt.Receipt, error) {
	args := m.Called(ctx, showID)
	if list, ok := args.Get(0).([]receipt.Receipt); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReceiptRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
