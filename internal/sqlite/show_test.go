package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func insertShow(t *testing.T, db *DB, title, client string, updatedAt time.Time) *show.Show {
	t.Helper()
	sh := &show.Show{
		ID:         uuid.NewString(),
		Title:      title,
		ClientName: client,
		TaxRate:    decimal.RequireFromString("0.13"),
		Status:     show.StatusDraft,
		CreatedAt:  updatedAt,
		UpdatedAt:  updatedAt,
	}
	require.NoError(t, NewShowRepository(db).Create(context.Background(), sh))
	return sh
}

func TestShowRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewShowRepository(db)

	created := insertShow(t, db, "Auto Expo", "Acme", time.Now())
	created.JobNumber = "J-1"
	created.TaxRate = decimal.RequireFromString("0.05")
	created.DocumentID = "doc-1"
	created.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Auto Expo", got.Title)
	require.Equal(t, "J-1", got.JobNumber)
	require.Equal(t, "doc-1", got.DocumentID)
	require.Equal(t, show.StatusDraft, got.Status)
	require.True(t, got.TaxRate.Equal(decimal.RequireFromString("0.05")))
	require.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Update(ctx, &show.Show{ID: "missing", Status: show.StatusDraft}), repository.ErrNotFound)
}

func TestShowRepository_ListNewestUpdatedFirst(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewShowRepository(db)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	older := insertShow(t, db, "Older", "A", base)
	newer := insertShow(t, db, "Newer", "B", base.Add(time.Hour))

	shows, err := repo.List(ctx, show.ListOptions{})
	require.NoError(t, err)
	require.Len(t, shows, 2)
	require.Equal(t, newer.ID, shows[0].ID)

	require.NoError(t, repo.Touch(ctx, older.ID, base.Add(2*time.Hour)))
	shows, err = repo.List(ctx, show.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, older.ID, shows[0].ID)

	shows, err = repo.List(ctx, show.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, shows, 1)
	require.Equal(t, newer.ID, shows[0].ID)

	require.ErrorIs(t, repo.Touch(ctx, "missing", base), repository.ErrNotFound)
}

func TestShowRepository_ListByStatus(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewShowRepository(db)

	open := insertShow(t, db, "Open", "A", time.Now())
	closed := insertShow(t, db, "Closed", "B", time.Now())
	closed.Status = show.StatusClosed
	require.NoError(t, repo.Update(ctx, closed))

	shows, err := repo.List(ctx, show.ListOptions{Status: show.StatusDraft})
	require.NoError(t, err)
	require.Len(t, shows, 1)
	require.Equal(t, open.ID, shows[0].ID)
}

func TestShowRepository_Search(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewShowRepository(db)

	expo := insertShow(t, db, "Auto Expo", "Acme Events", time.Now())
	insertShow(t, db, "Gala Dinner", "Bravo", time.Now())

	results, err := repo.Search(ctx, "acm", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, expo.ID, results[0].ID)

	// renamed shows are reindexed
	expo.Title = "Boat Show"
	require.NoError(t, repo.Update(ctx, expo))
	results, err = repo.Search(ctx, "boat", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	results, err = repo.Search(ctx, "expo", 10)
	require.NoError(t, err)
	require.Empty(t, results)

	// FTS syntax in user input is neutralised
	results, err = repo.Search(ctx, `"gala" OR`, 10)
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = repo.Search(ctx, "   ", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestShowRepository_DeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	sh := insertShow(t, db, "Expo", "Acme", now)
	entries := NewTimeEntryRepository(db)
	expenses := NewExpenseRepository(db)
	receipts := NewReceiptRepository(db)

	require.NoError(t, entries.Create(ctx, &timeentry.TimeEntry{
		ID: "t1", ShowID: sh.ID, Date: "2024-03-01", Description: "Work",
		LocationType: timeentry.LocationOnSite, WorkType: timeentry.WorkShowDay,
		StartTime: "09:00", EndTime: "17:00", HourlyRate: decimal.NewFromInt(60),
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, expenses.Create(ctx, &expense.Expense{
		ID: "e1", ShowID: sh.ID, Date: "2024-03-01", Category: expense.CategoryHotel,
		Description: "Hotel", Amount: decimal.NewFromInt(120), CreatedAt: now, UpdatedAt: now,
	}))
	expenseID := "e1"
	require.NoError(t, receipts.Create(ctx, &receipt.Receipt{
		ID: "r1", ShowID: sh.ID, ExpenseID: &expenseID, FileName: "hotel.jpg",
		ContentType: "image/jpeg", ImageData: "AAAA", CreatedAt: now,
	}))

	require.NoError(t, NewShowRepository(db).Delete(ctx, sh.ID))

	for _, table := range []string{"time_entries", "expenses", "receipts"} {
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
		require.Zero(t, count, table)
	}

	require.ErrorIs(t, NewShowRepository(db).Delete(ctx, sh.ID), repository.ErrNotFound)
}

func TestFTSQuery(t *testing.T) {
	require.Equal(t, `"auto"* "expo"*`, ftsQuery("  auto expo "))
	require.Equal(t, `"gala"* "OR"*`, ftsQuery(`"gala" OR`))
	require.Equal(t, "", ftsQuery(`""`))
}
