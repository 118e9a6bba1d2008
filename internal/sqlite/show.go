package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/repository"
)

// ShowRepository implements show.Repository for SQLite
type ShowRepository struct {
	db *DB
}

// NewShowRepository creates a new ShowRepository
func NewShowRepository(db *DB) *ShowRepository {
	return &ShowRepository{db: db}
}

const showColumns = `id, title, client_name, job_number, tax_rate, status, document_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShow(row rowScanner, sh *show.Show) error {
	return row.Scan(
		&sh.ID,
		&sh.Title,
		&sh.ClientName,
		&sh.JobNumber,
		&sh.TaxRate,
		&sh.Status,
		&sh.DocumentID,
		&sh.CreatedAt,
		&sh.UpdatedAt,
	)
}

// Create inserts a new show
func (r *ShowRepository) Create(ctx context.Context, sh *show.Show) error {
	query := `
		INSERT INTO shows (` + showColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sh.ID,
		sh.Title,
		sh.ClientName,
		sh.JobNumber,
		sh.TaxRate,
		sh.Status,
		sh.DocumentID,
		sh.CreatedAt.UTC(),
		sh.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create show: %w", err)
	}

	return nil
}

// Get retrieves a show by ID
func (r *ShowRepository) Get(ctx context.Context, id string) (*show.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE id = ?`

	var sh show.Show
	err := scanShow(r.db.QueryRowContext(ctx, query, id), &sh)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	return &sh, nil
}

// List returns shows ordered by most recent update
func (r *ShowRepository) List(ctx context.Context, opts show.ListOptions) ([]show.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows`
	args := []any{}

	if opts.Status != "" {
		query += " WHERE status = ?"
		args = append(args, opts.Status)
	}

	query += " ORDER BY updated_at DESC, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	return r.query(ctx, "list shows", query, args...)
}

// Update overwrites a show's mutable fields
func (r *ShowRepository) Update(ctx context.Context, sh *show.Show) error {
	query := `
		UPDATE shows
		SET title = ?, client_name = ?, job_number = ?, tax_rate = ?,
			status = ?, document_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sh.Title,
		sh.ClientName,
		sh.JobNumber,
		sh.TaxRate,
		sh.Status,
		sh.DocumentID,
		sh.UpdatedAt.UTC(),
		sh.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update show: %w", err)
	}

	return requireAffected(result, "update show")
}

// Touch sets a show's updated_at
func (r *ShowRepository) Touch(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE shows SET updated_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch show: %w", err)
	}

	return requireAffected(result, "touch show")
}

// Delete removes a show; entries, expenses and receipts cascade
func (r *ShowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}

	return requireAffected(result, "delete show")
}

func (r *ShowRepository) query(ctx context.Context, op, query string, args ...any) ([]show.Show, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	shows := []show.Show{}
	for rows.Next() {
		var sh show.Show
		if err := scanShow(rows, &sh); err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		shows = append(shows, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating show rows: %w", err)
	}

	return shows, nil
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
