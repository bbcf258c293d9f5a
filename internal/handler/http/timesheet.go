package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/auditlog"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/timesheet"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	UpdateWorkType(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	auditRepo        auditlog.AuditLogRepository
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, auditRepo auditlog.AuditLogRepository) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		auditRepo:        auditRepo,
	}
}

// CheckIn implements TimesheetHandler.
func (h *timesheetHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.timesheetService.CheckIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordAudit(r, h.auditRepo, employeeID, "timesheet.check_in", "timesheet", result.ID, map[string]any{
		"session_number": result.SessionNumber,
	})

	response.Created(w, "Checked in", result)
}

// CheckOut implements TimesheetHandler.
func (h *timesheetHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.timesheetService.CheckOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordAudit(r, h.auditRepo, employeeID, "timesheet.check_out", "timesheet", result.ID, map[string]any{
		"total_hours": result.TotalHours,
	})

	response.SuccessWithMessage(w, "Checked out", result)
}

// List implements TimesheetHandler.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := timesheet.TimesheetFilter{EmployeeID: &employeeID}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetToday implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.timesheetService.GetTodaySessions(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkType implements TimesheetHandler.
func (h *timesheetHandlerImpl) UpdateWorkType(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timesheet.UpdateWorkTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}

	result, err := h.timesheetService.UpdateWorkType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordAudit(r, h.auditRepo, employeeID, "employee.update_work_type", "employee", result.ID, map[string]any{
		"work_type": result.WorkType,
	})

	response.SuccessWithMessage(w, "Work type updated", result)
}
