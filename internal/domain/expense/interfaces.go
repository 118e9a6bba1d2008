package expense

import "context"

// Repository provides persistence for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Get(ctx context.Context, id string) (*Expense, error)
	ListByShow(ctx context.Context, showID string) ([]Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
}

// ShowToucher bumps a show's UpdatedAt after a child write.
type ShowToucher interface {
	Touch(ctx context.Context, id string) error
}
