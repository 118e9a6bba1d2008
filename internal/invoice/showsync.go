package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/show"
)

// LedgerLoader loads a show with its children.
type LedgerLoader interface {
	Load(ctx context.Context, showID string) (*ledger.Ledger, error)
}

// DocumentSetter persists the document reference onto a show.
type DocumentSetter interface {
	SetDocument(ctx context.Context, id, documentID string) (*show.Show, error)
}

// ShowSyncOptions holds the optional collaborators of a ShowSync.
type ShowSyncOptions struct {
	Locker     Locker
	Activities activity.Logger
	Notifier   Notifier
	Feed       changefeed.Publisher
	// Timeout bounds a whole sync when positive.
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShowSync syncs stored shows: it loads the records, runs the protocol under
// a per-show lock and writes the document reference back.
type ShowSync struct {
	invoices   *Service
	ledgers    LedgerLoader
	shows      DocumentSetter
	locker     Locker
	activities activity.Logger
	notifier   Notifier
	feed       changefeed.Publisher
	timeout    time.Duration
	logger     *slog.Logger
}

// NewShowSync creates a ShowSync. Missing options get in-process defaults.
func NewShowSync(invoices *Service, ledgers LedgerLoader, shows DocumentSetter, opts ShowSyncOptions) *ShowSync {
	if opts.Locker == nil {
		opts.Locker = NewMutexLocker()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &ShowSync{
		invoices:   invoices,
		ledgers:    ledgers,
		shows:      shows,
		locker:     opts.Locker,
		activities: opts.Activities,
		notifier:   opts.Notifier,
		feed:       opts.Feed,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

// Sync exports a stored show with the given protocol.
func (s *ShowSync) Sync(ctx context.Context, showID string, mode Mode) (Result, error) {
	unlock, err := s.locker.Lock(ctx, "showbill:sync:"+showID)
	if err != nil {
		if errors.Is(err, ErrLocked) {
			return Result{}, ErrSyncInProgress
		}
		return Result{}, fmt.Errorf("acquiring sync lock: %w", err)
	}
	defer unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	l, err := s.ledgers.Load(ctx, showID)
	if err != nil {
		return Result{}, err
	}

	result, syncErr := s.invoices.Sync(ctx, mode, PayloadFromLedger(l))

	// Bookkeeping still runs when the sync ran out of time.
	ctx = context.WithoutCancel(ctx)

	if result.DocumentID != "" && result.DocumentID != l.Show.DocumentID {
		if _, err := s.shows.SetDocument(ctx, showID, result.DocumentID); err != nil {
			s.logger.Error("failed to save document reference", "show_id", showID, "document_id", result.DocumentID, "error", err)
			if syncErr == nil {
				syncErr = fmt.Errorf("saving document reference: %w", err)
			}
		}
	}

	if syncErr != nil {
		s.record(ctx, showID, activity.TypeInvoiceSyncFailed, "invoice sync failed: "+syncErr.Error(), mode, result.DocumentID)
		return Result{DocumentID: result.DocumentID, URL: result.URL}, syncErr
	}

	s.record(ctx, showID, activity.TypeInvoiceSynced, fmt.Sprintf("synced %d hours rows and %d expense rows", len(l.TimeEntries), len(l.Expenses)), mode, result.DocumentID)
	if s.feed != nil {
		s.feed.Publish(changefeed.Change{Collection: changefeed.CollectionShows, Op: changefeed.OpSynced, ShowID: showID, ID: showID})
	}

	event := SyncedEvent{
		ShowID:      showID,
		Mode:        mode,
		DocumentID:  result.DocumentID,
		URL:         result.URL,
		TimeEntries: len(l.TimeEntries),
		Expenses:    len(l.Expenses),
		GrandTotal:  l.Totals.Display().GrandTotal,
		SyncedAt:    time.Now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("failed to publish sync notification", "show_id", showID, "error", err)
	}

	return result, nil
}

func (s *ShowSync) record(ctx context.Context, showID string, typ activity.ActivityType, summary string, mode Mode, docID string) {
	activity.Record(ctx, s.activities, s.logger, &activity.ActivityEntry{
		ShowID:       showID,
		ActivityType: typ,
		Summary:      summary,
		Details:      activity.Details(map[string]string{"mode": string(mode), "document_id": docID}),
	})
}
