package employee

import (
	"time"
)

type Employee struct {
	ID        string
	FullName  string
	Email     string
	WorkType  WorkType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkType controls how the session manager treats daily check-ins.
type WorkType string

const (
	// WorkTypeRemote allows multiple check-in/check-out sessions per day.
	WorkTypeRemote WorkType = "REMOTE"
	// WorkTypeOnsite allows a single session per calendar day.
	WorkTypeOnsite WorkType = "ONSITE"
)

func (w WorkType) Valid() bool {
	return w == WorkTypeRemote || w == WorkTypeOnsite
}
