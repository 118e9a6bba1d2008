package receipt

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/repository"
)

// MaxImageBytes caps the size of a single receipt image.
const MaxImageBytes = 10 << 20

// Service handles receipt operations.
type Service struct {
	repo       Repository
	shows      ShowToucher
	expenses   ExpenseGetter
	activities activity.Logger
	feed       changefeed.Publisher
	logger     *slog.Logger
}

// NewService creates a new receipt service. activities and feed may be nil.
func NewService(repo Repository, shows ShowToucher, expenses ExpenseGetter, activities activity.Logger, feed changefeed.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, shows: shows, expenses: expenses, activities: activities, feed: feed, logger: logger}
}

// AddRequest carries an uploaded receipt image.
type AddRequest struct {
	ExpenseID   *string
	FileName    string
	ContentType string
	Data        []byte
}

// Add stores a receipt image for a show, optionally attached to one of its expenses.
func (s *Service) Add(ctx context.Context, showID string, req AddRequest) (*Receipt, error) {
	if strings.TrimSpace(showID) == "" || len(req.Data) == 0 {
		return nil, ErrInvalidInput
	}
	if len(req.Data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, MaxImageBytes)
	}

	if req.ExpenseID != nil {
		exp, err := s.expenses.Get(ctx, *req.ExpenseID)
		if err != nil {
			if errors.Is(err, expense.ErrExpenseNotFound) {
				return nil, fmt.Errorf("%w: unknown expense %s", ErrInvalidInput, *req.ExpenseID)
			}
			return nil, fmt.Errorf("loading expense: %w", err)
		}
		if exp.ShowID != showID {
			return nil, fmt.Errorf("%w: expense belongs to another show", ErrInvalidInput)
		}
	}

	contentType := req.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(req.Data)
	}
	fileName := filepath.Base(strings.TrimSpace(req.FileName))
	if fileName == "." || fileName == "/" {
		fileName = "receipt"
	}

	rec := &Receipt{
		ID:          uuid.NewString(),
		ShowID:      showID,
		ExpenseID:   req.ExpenseID,
		FileName:    fileName,
		ContentType: contentType,
		ImageData:   base64.StdEncoding.EncodeToString(req.Data),
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, show.ErrShowNotFound
		}
		return nil, fmt.Errorf("creating receipt: %w", err)
	}

	s.afterWrite(ctx, rec, changefeed.OpCreated, activity.TypeReceiptAdded, fmt.Sprintf("added receipt %s", rec.FileName))
	return rec, nil
}

// Get fetches a receipt by ID.
func (s *Service) Get(ctx context.Context, id string) (*Receipt, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return rec, nil
}

// ListByShow returns a show's receipts, oldest first.
func (s *Service) ListByShow(ctx context.Context, showID string) ([]Receipt, error) {
	receipts, err := s.repo.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// Image decodes the stored image bytes and returns them with their content type.
func (s *Service) Image(ctx context.Context, id string) ([]byte, string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := base64.StdEncoding.DecodeString(rec.ImageData)
	if err != nil {
		return nil, "", fmt.Errorf("decoding receipt image: %w", err)
	}
	return data, rec.ContentType, nil
}

// Delete removes a receipt.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReceiptNotFound
		}
		return fmt.Errorf("deleting receipt: %w", err)
	}

	s.afterWrite(ctx, rec, changefeed.OpDeleted, activity.TypeReceiptDeleted, fmt.Sprintf("deleted receipt %s", rec.FileName))
	return nil
}

func (s *Service) afterWrite(ctx context.Context, rec *Receipt, op changefeed.Op, typ activity.ActivityType, summary string) {
	if err := s.shows.Touch(ctx, rec.ShowID); err != nil && s.logger != nil {
		s.logger.Warn("failed to touch show", "show_id", rec.ShowID, "error", err)
	}

	activity.Record(ctx, s.activities, s.logger, &activity.ActivityEntry{
		ShowID:       rec.ShowID,
		RecordID:     &rec.ID,
		ActivityType: typ,
		Summary:      summary,
	})

	if s.feed != nil {
		s.feed.Publish(changefeed.Change{
			Collection: changefeed.CollectionReceipts,
			Op:         op,
			ShowID:     rec.ShowID,
			ID:         rec.ID,
		})
	}
}
