package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

var _ Logger = (*Service)(nil)

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log logs an activity entry with the current timestamp if missing.
func (s *Service) Log(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ShowID == "" || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	return s.repo.List(ctx, opts)
}

// Record writes an entry through logger, ignoring a nil logger. Failures are
// logged and swallowed; the activity trail never fails the write it describes.
func Record(ctx context.Context, logger Logger, log *slog.Logger, entry *ActivityEntry) {
	if logger == nil || entry == nil {
		return
	}
	if err := logger.Log(ctx, entry); err != nil && log != nil {
		log.Warn("failed to record activity", "type", entry.ActivityType, "show_id", entry.ShowID, "error", err)
	}
}

// Details encodes v as the JSON details payload of an entry.
func Details(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
