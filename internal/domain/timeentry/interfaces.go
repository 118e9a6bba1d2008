package timeentry

import "context"

// Repository provides persistence for time entries.
type Repository interface {
	Create(ctx context.Context, e *TimeEntry) error
	Get(ctx context.Context, id string) (*TimeEntry, error)
	ListByShow(ctx context.Context, showID string) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	Delete(ctx context.Context, id string) error
}

// ShowToucher bumps a show's UpdatedAt after a child write.
type ShowToucher interface {
	Touch(ctx context.Context, id string) error
}
