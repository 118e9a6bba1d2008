package timeentry_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/rpggio/showbill/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTimeEntryService_AddDefaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &mocks.TimeEntryRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)
	feed := changefeed.NewBroker(4, nil)
	changes := feed.Subscribe(ctx, "s1")

	svc := timeentry.NewService(repo, shows, nil, feed, nil)
	entry, err := svc.Add(ctx, "s1", timeentry.AddRequest{})
	require.NoError(t, err)
	require.Equal(t, time.Now().Format(time.DateOnly), entry.Date)
	require.Equal(t, timeentry.DefaultDescription, entry.Description)
	require.Equal(t, timeentry.LocationOnSite, entry.LocationType)
	require.Equal(t, timeentry.WorkShowDay, entry.WorkType)
	require.Equal(t, "09:00", entry.StartTime)
	require.Equal(t, "17:00", entry.EndTime)
	require.True(t, entry.HourlyRate.Equal(decimal.NewFromInt(60)))
	require.Equal(t, "8.00", entry.Hours().StringFixed(2))

	shows.AssertCalled(t, "Touch", ctx, "s1")
	change := <-changes
	require.Equal(t, changefeed.CollectionTimeEntries, change.Collection)
	require.Equal(t, entry.ID, change.ID)
}

func TestTimeEntryService_AcceptsEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimeEntryRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)

	entry, err := timeentry.NewService(repo, shows, nil, nil, nil).Add(ctx, "s1", timeentry.AddRequest{StartTime: "17:00", EndTime: "09:00"})
	require.NoError(t, err)
	require.True(t, entry.Hours().IsZero())
}

func TestTimeEntryService_PadsClockTimes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{name: "unpadded hours", start: "9:00", end: "9:30", wantStart: "09:00", wantEnd: "09:30"},
		{name: "already padded", start: "10:15", end: "18:00", wantStart: "10:15", wantEnd: "18:00"},
		{name: "malformed kept", start: "noon", end: "7:5", wantStart: "noon", wantEnd: "7:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.TimeEntryRepository{}
			repo.On("Create", ctx, mock.Anything).Return(nil)
			shows := &mocks.ShowToucher{}
			shows.On("Touch", ctx, "s1").Return(nil)

			entry, err := timeentry.NewService(repo, shows, nil, nil, nil).Add(ctx, "s1", timeentry.AddRequest{StartTime: tt.start, EndTime: tt.end})
			require.NoError(t, err)
			require.Equal(t, tt.wantStart, entry.StartTime)
			require.Equal(t, tt.wantEnd, entry.EndTime)
		})
	}
}

func TestTimeEntryService_RejectsUnknownEnumsAndNegativeRate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimeEntryRepository{}
	svc := timeentry.NewService(repo, &mocks.ShowToucher{}, nil, nil, nil)

	_, err := svc.Add(ctx, "s1", timeentry.AddRequest{LocationType: "Moon"})
	require.ErrorIs(t, err, timeentry.ErrInvalidInput)
	_, err = svc.Add(ctx, "s1", timeentry.AddRequest{WorkType: "Napping"})
	require.ErrorIs(t, err, timeentry.ErrInvalidInput)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Add(ctx, "s1", timeentry.AddRequest{HourlyRate: &negative})
	require.ErrorIs(t, err, timeentry.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTimeEntryService_AddMissingShow(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimeEntryRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := timeentry.NewService(repo, &mocks.ShowToucher{}, nil, nil, nil).Add(ctx, "nope", timeentry.AddRequest{})
	require.ErrorIs(t, err, show.ErrShowNotFound)
}

func TestTimeEntryService_Update(t *testing.T) {
	ctx := context.Background()
	existing := &timeentry.TimeEntry{
		ID: "t1", ShowID: "s1", Date: "2024-03-01", Description: "Work",
		LocationType: timeentry.LocationOnSite, WorkType: timeentry.WorkSetup,
		StartTime: "09:00", EndTime: "17:00", HourlyRate: decimal.NewFromInt(60),
	}
	repo := &mocks.TimeEntryRepository{}
	repo.On("Get", ctx, "t1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	shows := &mocks.ShowToucher{}
	shows.On("Touch", ctx, "s1").Return(nil)

	end := "13:00"
	rate := decimal.NewFromInt(50)
	entry, err := timeentry.NewService(repo, shows, nil, nil, nil).Update(ctx, "t1", timeentry.UpdateRequest{EndTime: &end, HourlyRate: &rate})
	require.NoError(t, err)
	require.Equal(t, "200.00", entry.Line().Amount().StringFixed(2))
	shows.AssertCalled(t, "Touch", ctx, "s1")
}

func TestTimeEntryService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimeEntryRepository{}
	repo.On("Get", ctx, "t9").Return((*timeentry.TimeEntry)(nil), repository.ErrNotFound)

	err := timeentry.NewService(repo, &mocks.ShowToucher{}, nil, nil, nil).Delete(ctx, "t9")
	require.ErrorIs(t, err, timeentry.ErrTimeEntryNotFound)
}
