package tracking

import "errors"

// Tracking domain errors
var (
	// ErrTimerAlreadyRunning is returned when starting a timer while another
	// open entry exists for the same employee.
	ErrTimerAlreadyRunning = errors.New("you already have an active timer running")

	// ErrNoActiveTimer is returned by stop and conditional close when no open
	// entry exists (or it was closed concurrently).
	ErrNoActiveTimer = errors.New("no active timer found")

	ErrTimeEntryNotFound = errors.New("time entry not found")
)
