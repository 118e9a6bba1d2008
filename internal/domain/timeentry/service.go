package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/shopspring/decimal"
)

// Service handles time entry operations.
type Service struct {
	repo       Repository
	shows      ShowToucher
	activities activity.Logger
	feed       changefeed.Publisher
	logger     *slog.Logger
}

// NewService creates a new time entry service. activities and feed may be nil.
func NewService(repo Repository, shows ShowToucher, activities activity.Logger, feed changefeed.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, shows: shows, activities: activities, feed: feed, logger: logger}
}

// AddRequest defines time entry inputs. Empty fields take their defaults.
type AddRequest struct {
	Date         string
	Description  string
	LocationType LocationType
	WorkType     WorkType
	StartTime    string
	EndTime      string
	HourlyRate   *decimal.Decimal
}

// UpdateRequest defines a partial time entry update.
type UpdateRequest struct {
	Date         *string
	Description  *string
	LocationType *LocationType
	WorkType     *WorkType
	StartTime    *string
	EndTime      *string
	HourlyRate   *decimal.Decimal
}

// Add records a new time entry against a show.
func (s *Service) Add(ctx context.Context, showID string, req AddRequest) (*TimeEntry, error) {
	if strings.TrimSpace(showID) == "" {
		return nil, ErrInvalidInput
	}

	rate := DefaultHourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	now := time.Now()
	entry := &TimeEntry{
		ID:           uuid.NewString(),
		ShowID:       showID,
		Date:         orDefault(req.Date, now.Format(time.DateOnly)),
		Description:  orDefault(req.Description, DefaultDescription),
		LocationType: LocationType(orDefault(string(req.LocationType), string(LocationOnSite))),
		WorkType:     WorkType(orDefault(string(req.WorkType), string(WorkShowDay))),
		StartTime:    orDefault(req.StartTime, DefaultStartTime),
		EndTime:      orDefault(req.EndTime, DefaultEndTime),
		HourlyRate:   rate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validate(entry); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, show.ErrShowNotFound
		}
		return nil, fmt.Errorf("creating time entry: %w", err)
	}

	s.afterWrite(ctx, entry, changefeed.OpCreated, activity.TypeTimeEntryAdded,
		fmt.Sprintf("added %s h of %s on %s", entry.Hours().StringFixed(2), entry.WorkType, entry.Date))
	return entry, nil
}

// Get fetches a time entry by ID.
func (s *Service) Get(ctx context.Context, id string) (*TimeEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	return entry, nil
}

// ListByShow returns a show's entries ordered by date.
func (s *Service) ListByShow(ctx context.Context, showID string) ([]TimeEntry, error) {
	entries, err := s.repo.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}

// Update applies a partial update to a time entry.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*TimeEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		entry.Date = orDefault(*req.Date, entry.Date)
	}
	if req.Description != nil {
		entry.Description = orDefault(*req.Description, DefaultDescription)
	}
	if req.LocationType != nil {
		entry.LocationType = LocationType(orDefault(string(*req.LocationType), string(LocationOnSite)))
	}
	if req.WorkType != nil {
		entry.WorkType = WorkType(orDefault(string(*req.WorkType), string(WorkShowDay)))
	}
	if req.StartTime != nil {
		entry.StartTime = orDefault(*req.StartTime, DefaultStartTime)
	}
	if req.EndTime != nil {
		entry.EndTime = orDefault(*req.EndTime, DefaultEndTime)
	}
	if req.HourlyRate != nil {
		entry.HourlyRate = *req.HourlyRate
	}
	if err := validate(entry); err != nil {
		return nil, err
	}

	entry.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("updating time entry: %w", err)
	}

	s.afterWrite(ctx, entry, changefeed.OpUpdated, activity.TypeTimeEntryUpdated,
		fmt.Sprintf("updated time entry on %s", entry.Date))
	return entry, nil
}

// Delete removes a time entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTimeEntryNotFound
		}
		return fmt.Errorf("deleting time entry: %w", err)
	}

	s.afterWrite(ctx, entry, changefeed.OpDeleted, activity.TypeTimeEntryDeleted,
		fmt.Sprintf("deleted time entry on %s", entry.Date))
	return nil
}

func (s *Service) afterWrite(ctx context.Context, entry *TimeEntry, op changefeed.Op, typ activity.ActivityType, summary string) {
	if err := s.shows.Touch(ctx, entry.ShowID); err != nil && s.logger != nil {
		s.logger.Warn("failed to touch show", "show_id", entry.ShowID, "error", err)
	}

	activity.Record(ctx, s.activities, s.logger, &activity.ActivityEntry{
		ShowID:       entry.ShowID,
		RecordID:     &entry.ID,
		ActivityType: typ,
		Summary:      summary,
	})

	if s.feed != nil {
		s.feed.Publish(changefeed.Change{
			Collection: changefeed.CollectionTimeEntries,
			Op:         op,
			ShowID:     entry.ShowID,
			ID:         entry.ID,
		})
	}
}

// validate checks e and zero-pads its clock times.
func validate(e *TimeEntry) error {
	e.StartTime = billing.NormalizeClock(e.StartTime)
	e.EndTime = billing.NormalizeClock(e.EndTime)
	if !e.LocationType.Valid() {
		return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, e.LocationType)
	}
	if !e.WorkType.Valid() {
		return fmt.Errorf("%w: unknown work type %q", ErrInvalidInput, e.WorkType)
	}
	if e.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidInput)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
