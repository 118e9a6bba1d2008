package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeShowCreated       ActivityType = "show_created"
	TypeShowUpdated       ActivityType = "show_updated"
	TypeShowClosed        ActivityType = "show_closed"
	TypeShowReopened      ActivityType = "show_reopened"
	TypeShowDeleted       ActivityType = "show_deleted"
	TypeTimeEntryAdded    ActivityType = "time_entry_added"
	TypeTimeEntryUpdated  ActivityType = "time_entry_updated"
	TypeTimeEntryDeleted  ActivityType = "time_entry_deleted"
	TypeExpenseAdded      ActivityType = "expense_added"
	TypeExpenseUpdated    ActivityType = "expense_updated"
	TypeExpenseDeleted    ActivityType = "expense_deleted"
	TypeReceiptAdded      ActivityType = "receipt_added"
	TypeReceiptDeleted    ActivityType = "receipt_deleted"
	TypeInvoiceSynced     ActivityType = "invoice_synced"
	TypeInvoiceSyncFailed ActivityType = "invoice_sync_failed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ShowID       string       `json:"show_id"`
	RecordID     *string      `json:"record_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
