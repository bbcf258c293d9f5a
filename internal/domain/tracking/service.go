package tracking

import (
	"context"
)

// TrackingService is the time entry tracker: single-active-timer enforcement,
// idle reconciliation on stop, the activity reaction policy, and the two
// background sweeps over abandoned timers.
type TrackingService interface {
	// Start opens a new time entry. Fails with ErrTimerAlreadyRunning when
	// the employee already has an open entry.
	Start(ctx context.Context, req StartTimeEntryRequest) (TimeEntryResponse, error)

	// Stop closes the employee's open entry, reconciling the raw elapsed
	// time against recorded idle periods, and credits the associated task.
	Stop(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// GetActive returns the employee's open entry, ErrNoActiveTimer if none.
	GetActive(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	List(ctx context.Context, filter TimeEntryFilter) ([]TimeEntryResponse, error)

	// ReportActivity appends the event unconditionally, then applies the
	// reaction policy: sustained idleness stops the open timer.
	ReportActivity(ctx context.Context, req ReportActivityRequest) error

	// SweepAbandoned force-closes open entries past the abandonment age with
	// no recent ACTIVE signal. Returns the number of entries closed.
	SweepAbandoned(ctx context.Context) (int, error)

	// SweepLongRunning force-closes open entries past the hard age ceiling
	// regardless of recent activity. Returns the number of entries closed.
	SweepLongRunning(ctx context.Context) (int, error)
}
