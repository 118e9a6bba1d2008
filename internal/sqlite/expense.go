package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/repository"
)

// ExpenseRepository implements expense.Repository for SQLite
type ExpenseRepository struct {
	db *DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, show_id, date, category, description, amount, created_at, updated_at`

func scanExpense(row rowScanner, e *expense.Expense) error {
	return row.Scan(
		&e.ID,
		&e.ShowID,
		&e.Date,
		&e.Category,
		&e.Description,
		&e.Amount,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ShowID,
		e.Date,
		e.Category,
		e.Description,
		e.Amount,
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", mapWriteError(err))
	}

	return nil
}

// Get retrieves an expense by ID
func (r *ExpenseRepository) Get(ctx context.Context, id string) (*expense.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

	var e expense.Expense
	err := scanExpense(r.db.QueryRowContext(ctx, query, id), &e)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &e, nil
}

// ListByShow returns a show's expenses ordered by date
func (r *ExpenseRepository) ListByShow(ctx context.Context, showID string) ([]expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE show_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []expense.Expense{}
	for rows.Next() {
		var e expense.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return expenses, nil
}

// Update overwrites an expense's fields
func (r *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET date = ?, category = ?, description = ?, amount = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Date,
		e.Category,
		e.Description,
		e.Amount,
		e.UpdatedAt.UTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return requireAffected(result, "update expense")
}

// Delete removes an expense; attached receipts are detached, not deleted
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return requireAffected(result, "delete expense")
}
