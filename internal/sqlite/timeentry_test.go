package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newEntry(id, showID, date, start string) *timeentry.TimeEntry {
	now := time.Now()
	return &timeentry.TimeEntry{
		ID: id, ShowID: showID, Date: date, Description: "Work",
		LocationType: timeentry.LocationOnSite, WorkType: timeentry.WorkShowDay,
		StartTime: start, EndTime: "17:00", HourlyRate: decimal.RequireFromString("62.50"),
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestTimeEntryRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	sh := insertShow(t, db, "Expo", "Acme", time.Now())
	repo := NewTimeEntryRepository(db)

	entry := newEntry("t1", sh.ID, "2024-03-02", "09:00")
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, timeentry.WorkShowDay, got.WorkType)
	require.Equal(t, "62.50", got.HourlyRate.StringFixed(2))

	got.WorkType = timeentry.WorkDismantle
	got.EndTime = "12:30"
	got.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, timeentry.WorkDismantle, got.WorkType)
	require.Equal(t, "3.50", got.Hours().StringFixed(2))

	require.NoError(t, repo.Delete(ctx, "t1"))
	_, err = repo.Get(ctx, "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "t1"), repository.ErrNotFound)
}

func TestTimeEntryRepository_MissingShow(t *testing.T) {
	db := NewTestDB(t)
	err := NewTimeEntryRepository(db).Create(context.Background(), newEntry("t1", "nope", "2024-03-01", "09:00"))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestTimeEntryRepository_ListByShowOrdersByDate(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	sh := insertShow(t, db, "Expo", "Acme", time.Now())
	other := insertShow(t, db, "Other", "Acme", time.Now())
	repo := NewTimeEntryRepository(db)

	require.NoError(t, repo.Create(ctx, newEntry("t3", sh.ID, "2024-03-03", "09:00")))
	require.NoError(t, repo.Create(ctx, newEntry("t1", sh.ID, "2024-03-01", "13:00")))
	require.NoError(t, repo.Create(ctx, newEntry("t2", sh.ID, "2024-03-01", "08:00")))
	require.NoError(t, repo.Create(ctx, newEntry("x1", other.ID, "2024-02-01", "08:00")))

	entries, err := repo.ListByShow(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []string{"t2", "t1", "t3"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})

	entries, err = repo.ListByShow(ctx, "none")
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
