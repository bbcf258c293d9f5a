package timesheet

import "errors"

// Timesheet domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedInToday = errors.New("onsite employees can only check in once per day")
	ErrSessionAlreadyOpen    = errors.New("please check out from your current session before checking in again")

	// Check-out errors
	ErrNoOpenSession = errors.New("no active check-in found for today")

	ErrTimesheetNotFound = errors.New("timesheet not found")
)
