package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/repository"
)

// ReceiptRepository implements receipt.Repository for SQLite
type ReceiptRepository struct {
	db *DB
}

// NewReceiptRepository creates a new ReceiptRepository
func NewReceiptRepository(db *DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

const receiptColumns = `id, show_id, expense_id, file_name, content_type, image_data, created_at`

func scanReceipt(row rowScanner, rec *receipt.Receipt) error {
	var expenseID sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.ShowID,
		&expenseID,
		&rec.FileName,
		&rec.ContentType,
		&rec.ImageData,
		&rec.CreatedAt,
	); err != nil {
		return err
	}
	if expenseID.Valid {
		rec.ExpenseID = &expenseID.String
	}
	return nil
}

// Create inserts a new receipt
func (r *ReceiptRepository) Create(ctx context.Context, rec *receipt.Receipt) error {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ShowID,
		rec.ExpenseID,
		rec.FileName,
		rec.ContentType,
		rec.ImageData,
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", mapWriteError(err))
	}

	return nil
}

// Get retrieves a receipt by ID
func (r *ReceiptRepository) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = ?`

	var rec receipt.Receipt
	err := scanReceipt(r.db.QueryRowContext(ctx, query, id), &rec)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return &rec, nil
}

// ListByShow returns a show's receipts, oldest first
func (r *ReceiptRepository) ListByShow(ctx context.Context, showID string) ([]receipt.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE show_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []receipt.Receipt{}
	for rows.Next() {
		var rec receipt.Receipt
		if err := scanReceipt(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}

	return receipts, nil
}

// Delete removes a receipt
func (r *ReceiptRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	return requireAffected(result, "delete receipt")
}
