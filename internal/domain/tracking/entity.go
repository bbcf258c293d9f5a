package tracking

import (
	"time"
)

// TimeEntry records one continuous timer run, optionally tied to a task.
// EndTime == nil means the timer is still running; at most one entry per
// employee may be open at any instant.
type TimeEntry struct {
	ID              string
	EmployeeID      string
	TaskID          *string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Description     *string
	IsManual        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}
