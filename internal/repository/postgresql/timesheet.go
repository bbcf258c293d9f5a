package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/timesheet"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

const timesheetColumns = `id, employee_id, date, check_in, check_out, total_hours,
	   session_number, status, notes, created_at, updated_at`

// CreateOnsiteSession implements timesheet.TimesheetRepository.
//
// Onsite employees get a single session per day. The guard rejects the insert
// when any session already exists for (employee, date), open or closed.
func (r *timesheetRepository) CreateOnsiteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (id, employee_id, date, check_in, session_number, status)
		SELECT $1, $2, $3, $4, 1, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM timesheets
			WHERE employee_id = $2 AND date = $3
		)
		RETURNING ` + timesheetColumns + `
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		employeeID,
		date,
		checkIn,
		timesheet.StatusPending,
	).Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.CheckIn, &ts.CheckOut, &ts.TotalHours,
		&ts.SessionNumber, &ts.Status, &ts.Notes, &ts.CreatedAt, &ts.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrAlreadyCheckedInToday
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create onsite session: %w", err)
	}

	return ts, nil
}

// CreateRemoteSession implements timesheet.TimesheetRepository.
//
// Remote employees may stack sessions through the day. The session number is
// computed inside the insert so concurrent check-ins after a checkout cannot
// pick the same number, and the guard blocks while a session is still open.
func (r *timesheetRepository) CreateRemoteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (id, employee_id, date, check_in, session_number, status)
		SELECT $1, $2, $3, $4,
		       COALESCE((
		           SELECT MAX(session_number) FROM timesheets
		           WHERE employee_id = $2 AND date = $3
		       ), 0) + 1,
		       $5
		WHERE NOT EXISTS (
			SELECT 1 FROM timesheets
			WHERE employee_id = $2 AND date = $3 AND check_out IS NULL
		)
		RETURNING ` + timesheetColumns + `
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		employeeID,
		date,
		checkIn,
		timesheet.StatusPending,
	).Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.CheckIn, &ts.CheckOut, &ts.TotalHours,
		&ts.SessionNumber, &ts.Status, &ts.Notes, &ts.CreatedAt, &ts.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrSessionAlreadyOpen
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create remote session: %w", err)
	}

	return ts, nil
}

// GetOpenSession implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE employee_id = $1
		  AND date = $2
		  AND check_out IS NULL
		ORDER BY session_number DESC
		LIMIT 1
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.CheckIn, &ts.CheckOut, &ts.TotalHours,
		&ts.SessionNumber, &ts.Status, &ts.Notes, &ts.CreatedAt, &ts.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrNoOpenSession
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return ts, nil
}

// CloseSession implements timesheet.TimesheetRepository.
func (r *timesheetRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, totalHours decimal.Decimal) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET check_out = $2,
		    total_hours = $3,
		    updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
		RETURNING ` + timesheetColumns + `
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query, id, checkOut, totalHours).Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.CheckIn, &ts.CheckOut, &ts.TotalHours,
		&ts.SessionNumber, &ts.Status, &ts.Notes, &ts.CreatedAt, &ts.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrNoOpenSession
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to close session: %w", err)
	}

	return ts, nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, session_number DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	return scanTimesheets(rows)
}

// ListByEmployeeAndDate implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE employee_id = $1
		  AND date = $2
		ORDER BY session_number ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets by date: %w", err)
	}
	defer rows.Close()

	return scanTimesheets(rows)
}

func scanTimesheets(rows pgx.Rows) ([]timesheet.Timesheet, error) {
	var timesheets []timesheet.Timesheet
	for rows.Next() {
		var ts timesheet.Timesheet
		if err := rows.Scan(
			&ts.ID, &ts.EmployeeID, &ts.Date, &ts.CheckIn, &ts.CheckOut, &ts.TotalHours,
			&ts.SessionNumber, &ts.Status, &ts.Notes, &ts.CreatedAt, &ts.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return timesheets, nil
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}
