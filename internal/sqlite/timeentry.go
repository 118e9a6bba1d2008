package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/repository"
)

// TimeEntryRepository implements timeentry.Repository for SQLite
type TimeEntryRepository struct {
	db *DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const timeEntryColumns = `id, show_id, date, description, location_type, work_type,
	start_time, end_time, hourly_rate, created_at, updated_at`

func scanTimeEntry(row rowScanner, e *timeentry.TimeEntry) error {
	return row.Scan(
		&e.ID,
		&e.ShowID,
		&e.Date,
		&e.Description,
		&e.LocationType,
		&e.WorkType,
		&e.StartTime,
		&e.EndTime,
		&e.HourlyRate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

// Create inserts a new time entry
func (r *TimeEntryRepository) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	query := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ShowID,
		e.Date,
		e.Description,
		e.LocationType,
		e.WorkType,
		e.StartTime,
		e.EndTime,
		e.HourlyRate,
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", mapWriteError(err))
	}

	return nil
}

// Get retrieves a time entry by ID
func (r *TimeEntryRepository) Get(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`

	var e timeentry.TimeEntry
	err := scanTimeEntry(r.db.QueryRowContext(ctx, query, id), &e)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	return &e, nil
}

// ListByShow returns a show's time entries ordered by date
func (r *TimeEntryRepository) ListByShow(ctx context.Context, showID string) ([]timeentry.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE show_id = ?
		ORDER BY date ASC, start_time ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries := []timeentry.TimeEntry{}
	for rows.Next() {
		var e timeentry.TimeEntry
		if err := scanTimeEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}

	return entries, nil
}

// Update overwrites a time entry's fields
func (r *TimeEntryRepository) Update(ctx context.Context, e *timeentry.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET date = ?, description = ?, location_type = ?, work_type = ?,
			start_time = ?, end_time = ?, hourly_rate = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Date,
		e.Description,
		e.LocationType,
		e.WorkType,
		e.StartTime,
		e.EndTime,
		e.HourlyRate,
		e.UpdatedAt.UTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}

	return requireAffected(result, "update time entry")
}

// Delete removes a time entry
func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	return requireAffected(result, "delete time entry")
}
