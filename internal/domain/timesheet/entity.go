package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timesheet is one attendance session for one calendar day. Remote employees
// may accumulate several sessions per day with strictly increasing session
// numbers; onsite employees get exactly one.
type Timesheet struct {
	ID            string
	EmployeeID    string
	Date          time.Time // day-truncated, UTC
	CheckIn       *time.Time
	CheckOut      *time.Time
	TotalHours    decimal.Decimal
	SessionNumber int
	Status        Status
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Timesheet) Open() bool {
	return t.CheckIn != nil && t.CheckOut == nil
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)
