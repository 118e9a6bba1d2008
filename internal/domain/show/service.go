package show

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
	"github.com/rpggio/showbill/internal/repository"
	"github.com/shopspring/decimal"
)

// Service handles show operations.
type Service struct {
	repo       Repository
	activities activity.Logger
	feed       changefeed.Publisher
	logger     *slog.Logger
}

// NewService creates a new show service. activities and feed may be nil.
func NewService(repo Repository, activities activity.Logger, feed changefeed.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, feed: feed, logger: logger}
}

// CreateRequest defines show creation inputs.
type CreateRequest struct {
	Title      string
	ClientName string
	JobNumber  string
	TaxRate    *decimal.Decimal
}

// UpdateRequest defines a partial show update. Nil fields are left unchanged.
type UpdateRequest struct {
	Title      *string
	ClientName *string
	JobNumber  *string
	TaxRate    *decimal.Decimal
}

// Create creates a new draft show.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Show, error) {
	taxRate := DefaultTaxRate
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInput)
		}
		taxRate = *req.TaxRate
	}

	now := time.Now()
	sh := &Show{
		ID:         uuid.NewString(),
		Title:      orDefault(req.Title, DefaultTitle),
		ClientName: orDefault(req.ClientName, DefaultClientName),
		JobNumber:  strings.TrimSpace(req.JobNumber),
		TaxRate:    taxRate,
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.record(ctx, sh.ID, activity.TypeShowCreated, fmt.Sprintf("created show %q for %s", sh.Title, sh.ClientName))
	s.publish(sh.ID, changefeed.OpCreated)
	return sh, nil
}

// Get fetches a show by ID.
func (s *Service) Get(ctx context.Context, id string) (*Show, error) {
	sh, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("getting show: %w", err)
	}
	return sh, nil
}

// List returns shows, most recently updated first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Show, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, opts.Status)
	}
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, ErrInvalidInput
	}
	shows, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}

// Search finds shows whose title, client or job number match query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Show, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 20
	}
	shows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching shows: %w", err)
	}
	return shows, nil
}

// Update applies a partial update. Blanked title or client fall back to defaults.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Show, error) {
	if req.TaxRate != nil && req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInput)
	}

	sh, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sh.Title = orDefault(*req.Title, DefaultTitle)
	}
	if req.ClientName != nil {
		sh.ClientName = orDefault(*req.ClientName, DefaultClientName)
	}
	if req.JobNumber != nil {
		sh.JobNumber = strings.TrimSpace(*req.JobNumber)
	}
	if req.TaxRate != nil {
		sh.TaxRate = *req.TaxRate
	}

	if err := s.save(ctx, sh); err != nil {
		return nil, err
	}

	s.record(ctx, sh.ID, activity.TypeShowUpdated, fmt.Sprintf("updated show %q", sh.Title))
	s.publish(sh.ID, changefeed.OpUpdated)
	return sh, nil
}

// Close marks a show as closed.
func (s *Service) Close(ctx context.Context, id string) (*Show, error) {
	return s.transition(ctx, id, StatusClosed, activity.TypeShowClosed)
}

// Reopen returns a closed show to draft.
func (s *Service) Reopen(ctx context.Context, id string) (*Show, error) {
	return s.transition(ctx, id, StatusDraft, activity.TypeShowReopened)
}

func (s *Service) transition(ctx context.Context, id string, to Status, typ activity.ActivityType) (*Show, error) {
	sh, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status == to {
		return sh, nil
	}

	from := sh.Status
	sh.Status = to
	if err := s.save(ctx, sh); err != nil {
		return nil, err
	}

	s.record(ctx, sh.ID, typ, fmt.Sprintf("show %s -> %s", from, to))
	s.publish(sh.ID, changefeed.OpUpdated)
	return sh, nil
}

// Touch bumps the show's UpdatedAt. Child services call this on every write.
func (s *Service) Touch(ctx context.Context, id string) error {
	if err := s.repo.Touch(ctx, id, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShowNotFound
		}
		return fmt.Errorf("touching show: %w", err)
	}
	return nil
}

// SetDocument records the spreadsheet document generated for the show.
func (s *Service) SetDocument(ctx context.Context, id, documentID string) (*Show, error) {
	sh, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.DocumentID == documentID {
		return sh, nil
	}

	sh.DocumentID = documentID
	if err := s.save(ctx, sh); err != nil {
		return nil, err
	}

	s.publish(sh.ID, changefeed.OpUpdated)
	return sh, nil
}

// Delete removes a show together with its entries, expenses and receipts.
func (s *Service) Delete(ctx context.Context, id string) error {
	sh, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShowNotFound
		}
		return fmt.Errorf("deleting show: %w", err)
	}

	s.record(ctx, id, activity.TypeShowDeleted, fmt.Sprintf("deleted show %q", sh.Title))
	s.publish(id, changefeed.OpDeleted)
	return nil
}

func (s *Service) save(ctx context.Context, sh *Show) error {
	sh.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, sh); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShowNotFound
		}
		return fmt.Errorf("updating show: %w", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, showID string, typ activity.ActivityType, summary string) {
	activity.Record(ctx, s.activities, s.logger, &activity.ActivityEntry{
		ShowID:       showID,
		RecordID:     &showID,
		ActivityType: typ,
		Summary:      summary,
	})
}

func (s *Service) publish(showID string, op changefeed.Op) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(changefeed.Change{
		Collection: changefeed.CollectionShows,
		Op:         op,
		ShowID:     showID,
		ID:         showID,
	})
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
