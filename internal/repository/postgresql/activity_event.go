package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
)

type activityEventRepository struct {
	db *database.DB
}

// Create implements activity.EventRepository.
func (r *activityEventRepository) Create(ctx context.Context, event activity.Event) (activity.Event, error) {
	q := GetQuerier(ctx, r.db)

	event.ID = uuid.New().String()

	query := `
		INSERT INTO activity_events (id, employee_id, type, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, type, metadata, created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Type,
		event.Metadata,
	).Scan(&event.ID, &event.EmployeeID, &event.Type, &event.Metadata, &event.CreatedAt)

	if err != nil {
		return activity.Event{}, fmt.Errorf("failed to create activity event: %w", err)
	}

	return event, nil
}

// ListByEmployeeAndRange implements activity.EventRepository.
func (r *activityEventRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, types ...activity.EventType) ([]activity.Event, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{employeeID, from, to}
	query := `
		SELECT id, employee_id, type, metadata, created_at
		FROM activity_events
		WHERE employee_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
	`

	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += " AND type IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []activity.Event
	for rows.Next() {
		var event activity.Event
		if err := rows.Scan(&event.ID, &event.EmployeeID, &event.Type, &event.Metadata, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity events: %w", err)
	}

	return events, nil
}

// HasEventSince implements activity.EventRepository.
func (r *activityEventRepository) HasEventSince(ctx context.Context, employeeID string, eventType activity.EventType, since time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM activity_events
			WHERE employee_id = $1
			  AND type = $2
			  AND created_at >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, eventType, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check recent activity: %w", err)
	}

	return exists, nil
}

func NewActivityEventRepository(db *database.DB) activity.EventRepository {
	return &activityEventRepository{db: db}
}
