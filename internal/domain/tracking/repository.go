package tracking

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for time entries. The two mutating
// methods carry the concurrency guarantees of the tracker:
//   - CreateIfNoneOpen inserts only when no open entry exists for the
//     employee, in a single statement, so concurrent starts cannot both
//     succeed.
//   - Close only writes while end_time is still NULL, so overlapping sweeps
//     and a concurrent manual stop cannot double-close an entry.
type TimeEntryRepository interface {
	// CreateIfNoneOpen returns ErrTimerAlreadyRunning when the guard blocks
	// the insert.
	CreateIfNoneOpen(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetOpenByEmployee returns ErrNoActiveTimer when the employee has no
	// open entry.
	GetOpenByEmployee(ctx context.Context, employeeID string) (TimeEntry, error)

	// ListOpen returns every open entry, oldest first. Used by the sweeps.
	ListOpen(ctx context.Context) ([]TimeEntry, error)

	// Close sets end_time and duration_minutes on an entry that is still
	// open. Returns ErrNoActiveTimer when the entry was already closed.
	Close(ctx context.Context, id string, endTime time.Time, durationMinutes int) (TimeEntry, error)

	List(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, error)
}
