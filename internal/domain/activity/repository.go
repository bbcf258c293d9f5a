package activity

import (
	"context"
	"time"
)

// EventRepository is append-only: events are never updated or deleted.
type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)

	// ListByEmployeeAndRange returns events inside [from, to] ordered by
	// created_at ascending, optionally restricted to the given types.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, types ...EventType) ([]Event, error)

	// HasEventSince reports whether any event of the given type was recorded
	// for the employee at or after since.
	HasEventSince(ctx context.Context, employeeID string, eventType EventType, since time.Time) (bool, error)
}
