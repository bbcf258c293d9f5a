package tracking

import (
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/validator"
)

// ========================================
// TIME ENTRY DTOs
// ========================================

type StartTimeEntryRequest struct {
	EmployeeID  string  `json:"employee_id"`
	TaskID      *string `json:"task_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *StartTimeEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.TaskID != nil && validator.IsEmpty(*r.TaskID) {
		errs = append(errs, validator.ValidationError{
			Field:   "task_id",
			Message: "task_id must not be empty when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportActivityRequest struct {
	EmployeeID string            `json:"employee_id"`
	Type       string            `json:"type"`
	Metadata   activity.Metadata `json:"metadata,omitempty"`
}

func (r *ReportActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	TaskID     *string `json:"task_id,omitempty"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	TaskID          *string `json:"task_id,omitempty"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Description     *string `json:"description,omitempty"`
	IsManual        bool    `json:"is_manual"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}
