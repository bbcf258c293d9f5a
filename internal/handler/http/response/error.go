package response

import (
	"errors"
	"net/http"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/task"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/timesheet"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tracking domain errors
	case errors.Is(err, tracking.ErrTimerAlreadyRunning):
		Conflict(w, err.Error())
	case errors.Is(err, tracking.ErrNoActiveTimer):
		NotFound(w, err.Error())
	case errors.Is(err, tracking.ErrTimeEntryNotFound):
		NotFound(w, "Time entry not found")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrAlreadyCheckedInToday):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrSessionAlreadyOpen):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrNoOpenSession):
		NotFound(w, err.Error())
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")

	// Collaborator errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidWorkType):
		BadRequest(w, "Invalid work type", nil)
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
