package timesheet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetRepository defines data access for attendance sessions. The two
// create methods perform their uniqueness check and the insert in a single
// statement so concurrent check-ins for the same employee cannot both pass.
type TimesheetRepository interface {
	// CreateOnsiteSession inserts session number 1 for (employee, date).
	// Returns ErrAlreadyCheckedInToday when any session exists for that day.
	CreateOnsiteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (Timesheet, error)

	// CreateRemoteSession inserts the next session number for (employee,
	// date). Returns ErrSessionAlreadyOpen when an open session exists.
	CreateRemoteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (Timesheet, error)

	// GetOpenSession returns the open session with the highest session
	// number for the day, ErrNoOpenSession if none.
	GetOpenSession(ctx context.Context, employeeID string, date time.Time) (Timesheet, error)

	// CloseSession sets check_out and total_hours while check_out is still
	// NULL. Returns ErrNoOpenSession when the session was already closed.
	CloseSession(ctx context.Context, id string, checkOut time.Time, totalHours decimal.Decimal) (Timesheet, error)

	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, error)

	// ListByEmployeeAndDate returns all sessions for the day, session number
	// ascending.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Timesheet, error)
}
