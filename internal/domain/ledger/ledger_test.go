package ledger_test

import (
	"context"
	"testing"

	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/rpggio/showbill/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLedger_LoadComputesTotals(t *testing.T) {
	ctx := context.Background()

	shows := &mocks.ShowRepository{}
	shows.On("Get", ctx, "s1").Return(&show.Show{ID: "s1", TaxRate: decimal.RequireFromString("0.13")}, nil)
	entries := &mocks.TimeEntryRepository{}
	entries.On("ListByShow", ctx, "s1").Return([]timeentry.TimeEntry{
		{ID: "t1", StartTime: "09:00", EndTime: "13:00", HourlyRate: decimal.NewFromInt(50)},
	}, nil)
	expenses := &mocks.ExpenseRepository{}
	expenses.On("ListByShow", ctx, "s1").Return([]expense.Expense{{ID: "e1", Amount: decimal.NewFromInt(30)}}, nil)

	svc := ledger.NewService(
		show.NewService(shows, nil, nil, nil),
		timeentry.NewService(entries, nil, nil, nil, nil),
		expense.NewService(expenses, nil, nil, nil, nil),
		nil,
	)

	l, err := svc.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, l.TimeEntries, 1)
	require.Len(t, l.Expenses, 1)
	require.Equal(t, "259.90", l.Totals.Display().GrandTotal)
}

func TestLedger_EmptyShow(t *testing.T) {
	ctx := context.Background()
	shows := &mocks.ShowRepository{}
	shows.On("Get", ctx, "s1").Return(&show.Show{ID: "s1", TaxRate: show.DefaultTaxRate}, nil)
	entries := &mocks.TimeEntryRepository{}
	entries.On("ListByShow", ctx, "s1").Return(nil, nil)
	expenses := &mocks.ExpenseRepository{}
	expenses.On("ListByShow", ctx, "s1").Return(nil, nil)

	svc := ledger.NewService(show.NewService(shows, nil, nil, nil), timeentry.NewService(entries, nil, nil, nil, nil), expense.NewService(expenses, nil, nil, nil, nil), nil)
	totals, err := svc.Totals(ctx, "s1")
	require.NoError(t, err)
	require.True(t, totals.GrandTotal.IsZero())

	l, err := svc.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, l.TimeEntries)
	require.NotNil(t, l.Expenses)
}

func TestLedger_MissingShow(t *testing.T) {
	ctx := context.Background()
	shows := &mocks.ShowRepository{}
	shows.On("Get", ctx, "nope").Return((*show.Show)(nil), repository.ErrNotFound)

	svc := ledger.NewService(show.NewService(shows, nil, nil, nil), nil, nil, nil)
	_, err := svc.Load(ctx, "nope")
	require.ErrorIs(t, err, show.ErrShowNotFound)
}
