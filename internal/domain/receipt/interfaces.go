package receipt

import (
	"context"

	"github.com/rpggio/showbill/internal/domain/expense"
)

// Repository provides persistence for receipts.
type Repository interface {
	Create(ctx context.Context, r *Receipt) error
	Get(ctx context.Context, id string) (*Receipt, error)
	ListByShow(ctx context.Context, showID string) ([]Receipt, error)
	Delete(ctx context.Context, id string) error
}

// ShowToucher bumps a show's UpdatedAt after a child write.
type ShowToucher interface {
	Touch(ctx context.Context, id string) error
}

// ExpenseGetter resolves the expense a receipt is attached to.
type ExpenseGetter interface {
	Get(ctx context.Context, id string) (*expense.Expense, error)
}
