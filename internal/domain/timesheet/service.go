package timesheet

import (
	"context"
)

// TimesheetService manages daily check-in/check-out sessions. The branching
// between one-session-per-day and multi-session days is driven by the
// employee's work type, read at check-in time.
type TimesheetService interface {
	CheckIn(ctx context.Context, employeeID string) (TimesheetResponse, error)

	CheckOut(ctx context.Context, employeeID string) (TimesheetResponse, error)

	List(ctx context.Context, filter TimesheetFilter) ([]TimesheetResponse, error)

	GetTodaySessions(ctx context.Context, employeeID string) ([]TimesheetResponse, error)

	UpdateWorkType(ctx context.Context, req UpdateWorkTypeRequest) (EmployeeResponse, error)
}
