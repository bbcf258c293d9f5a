package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

const timeEntryColumns = `id, employee_id, task_id, start_time, end_time, duration_minutes,
	   description, is_manual, created_at, updated_at`

// CreateIfNoneOpen implements tracking.TimeEntryRepository.
//
// The existence check and the insert run as one statement so two concurrent
// starts for the same employee cannot both pass the guard.
func (r *timeEntryRepository) CreateIfNoneOpen(ctx context.Context, entry tracking.TimeEntry) (tracking.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.New().String()

	query := `
		INSERT INTO time_entries (id, employee_id, task_id, start_time, description, is_manual)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM time_entries
			WHERE employee_id = $2 AND end_time IS NULL
		)
		RETURNING ` + timeEntryColumns + `
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.TaskID,
		entry.StartTime,
		entry.Description,
		entry.IsManual,
	).Scan(
		&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
		&entry.Description, &entry.IsManual, &entry.CreatedAt, &entry.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return tracking.TimeEntry{}, tracking.ErrTimerAlreadyRunning
		}
		return tracking.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetOpenByEmployee implements tracking.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (tracking.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var entry tracking.TimeEntry
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
		&entry.Description, &entry.IsManual, &entry.CreatedAt, &entry.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return tracking.TimeEntry{}, tracking.ErrNoActiveTimer
		}
		return tracking.TimeEntry{}, fmt.Errorf("failed to get open time entry: %w", err)
	}

	return entry, nil
}

// ListOpen implements tracking.TimeEntryRepository.
func (r *timeEntryRepository) ListOpen(ctx context.Context) ([]tracking.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE end_time IS NULL
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open time entries: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// Close implements tracking.TimeEntryRepository.
//
// The end_time IS NULL condition makes closes idempotent: a sweep racing a
// manual stop finds zero rows and reports ErrNoActiveTimer instead of
// overwriting the earlier close.
func (r *timeEntryRepository) Close(ctx context.Context, id string, endTime time.Time, durationMinutes int) (tracking.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET end_time = $2,
		    duration_minutes = $3,
		    updated_at = NOW()
		WHERE id = $1
		  AND end_time IS NULL
		RETURNING ` + timeEntryColumns + `
	`

	var entry tracking.TimeEntry
	err := q.QueryRow(ctx, query, id, endTime, durationMinutes).Scan(
		&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
		&entry.Description, &entry.IsManual, &entry.CreatedAt, &entry.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return tracking.TimeEntry{}, tracking.ErrNoActiveTimer
		}
		return tracking.TimeEntry{}, fmt.Errorf("failed to close time entry: %w", err)
	}

	return entry, nil
}

// List implements tracking.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter tracking.TimeEntryFilter) ([]tracking.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.TaskID != nil && *filter.TaskID != "" {
		conditions = append(conditions, fmt.Sprintf("task_id = $%d", argIdx))
		args = append(args, *filter.TaskID)
		argIdx++
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

func scanTimeEntries(rows pgx.Rows) ([]tracking.TimeEntry, error) {
	var entries []tracking.TimeEntry
	for rows.Next() {
		var entry tracking.TimeEntry
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.TaskID, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
			&entry.Description, &entry.IsManual, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

func NewTimeEntryRepository(db *database.DB) tracking.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}
