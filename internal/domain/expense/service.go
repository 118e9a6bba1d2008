package expense

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
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/repository"
	"github.com/shopspring/decimal"
)

// Service handles expense operations.
type Service struct {
	repo       Repository
	shows      ShowToucher
	activities activity.Logger
	feed       changefeed.Publisher
	logger     *slog.Logger
}

// NewService creates a new expense service. activities and feed may be nil.
func NewService(repo Repository, shows ShowToucher, activities activity.Logger, feed changefeed.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, shows: shows, activities: activities, feed: feed, logger: logger}
}

// AddRequest defines expense inputs.
type AddRequest struct {
	Date        string
	Category    Category
	Description string
	Amount      decimal.Decimal
}

// UpdateRequest defines a partial expense update.
type UpdateRequest struct {
	Date        *string
	Category    *Category
	Description *string
	Amount      *decimal.Decimal
}

// Add records a new expense against a show.
func (s *Service) Add(ctx context.Context, showID string, req AddRequest) (*Expense, error) {
	if strings.TrimSpace(showID) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	category := Category(orDefault(string(req.Category), string(DefaultCategory)))
	exp := &Expense{
		ID:          uuid.NewString(),
		ShowID:      showID,
		Date:        orDefault(req.Date, now.Format(time.DateOnly)),
		Category:    category,
		Description: orDefault(req.Description, string(category)),
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(exp); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, show.ErrShowNotFound
		}
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	s.afterWrite(ctx, exp, changefeed.OpCreated, activity.TypeExpenseAdded,
		fmt.Sprintf("added %s expense of %s", exp.Category, exp.Amount.StringFixed(2)))
	return exp, nil
}

// Get fetches an expense by ID.
func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	exp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return exp, nil
}

// ListByShow returns a show's expenses ordered by date.
func (s *Service) ListByShow(ctx context.Context, showID string) ([]Expense, error) {
	expenses, err := s.repo.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

// Update applies a partial update to an expense.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error) {
	exp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		exp.Date = orDefault(*req.Date, exp.Date)
	}
	if req.Category != nil {
		exp.Category = Category(orDefault(string(*req.Category), string(DefaultCategory)))
	}
	if req.Description != nil {
		exp.Description = orDefault(*req.Description, string(exp.Category))
	}
	if req.Amount != nil {
		exp.Amount = *req.Amount
	}
	if err := validate(exp); err != nil {
		return nil, err
	}

	exp.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, exp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("updating expense: %w", err)
	}

	s.afterWrite(ctx, exp, changefeed.OpUpdated, activity.TypeExpenseUpdated,
		fmt.Sprintf("updated %s expense", exp.Category))
	return exp, nil
}

// Delete removes an expense. Receipts attached to it stay with the show.
func (s *Service) Delete(ctx context.Context, id string) error {
	exp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("deleting expense: %w", err)
	}

	s.afterWrite(ctx, exp, changefeed.OpDeleted, activity.TypeExpenseDeleted,
		fmt.Sprintf("deleted %s expense", exp.Category))
	return nil
}

func (s *Service) afterWrite(ctx context.Context, exp *Expense, op changefeed.Op, typ activity.ActivityType, summary string) {
	if err := s.shows.Touch(ctx, exp.ShowID); err != nil && s.logger != nil {
		s.logger.Warn("failed to touch show", "show_id", exp.ShowID, "error", err)
	}

	activity.Record(ctx, s.activities, s.logger, &activity.ActivityEntry{
		ShowID:       exp.ShowID,
		RecordID:     &exp.ID,
		ActivityType: typ,
		Summary:      summary,
	})

	if s.feed != nil {
		s.feed.Publish(changefeed.Change{
			Collection: changefeed.CollectionExpenses,
			Op:         op,
			ShowID:     exp.ShowID,
			ID:         exp.ID,
		})
	}
}

func validate(e *Expense) error {
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, e.Category)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
