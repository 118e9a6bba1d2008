package invoice

import (
	"context"
	"time"
)

// SyncedEvent announces a completed sync.
type SyncedEvent struct {
	ShowID      string    `json:"show_id"`
	Mode        Mode      `json:"mode"`
	DocumentID  string    `json:"document_id,omitempty"`
	URL         string    `json:"url,omitempty"`
	TimeEntries int       `json:"time_entries"`
	Expenses    int       `json:"expenses"`
	GrandTotal  string    `json:"grand_total"`
	SyncedAt    time.Time `json:"synced_at"`
}

// Notifier publishes sync events to other systems.
type Notifier interface {
	Notify(ctx context.Context, event SyncedEvent) error
}

// NopNotifier discards events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, SyncedEvent) error { return nil }
