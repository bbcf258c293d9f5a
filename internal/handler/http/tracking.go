package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/auditlog"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http/response"
)

type TrackingHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type trackingHandlerImpl struct {
	trackingService tracking.TrackingService
	auditRepo       auditlog.AuditLogRepository
}

func NewTrackingHandler(trackingService tracking.TrackingService, auditRepo auditlog.AuditLogRepository) TrackingHandler {
	return &trackingHandlerImpl{
		trackingService: trackingService,
		auditRepo:       auditRepo,
	}
}

// Start implements TrackingHandler.
func (h *trackingHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req tracking.StartTimeEntryRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	result, err := h.trackingService.Start(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordAudit(r, h.auditRepo, employeeID, "timer.start", "time_entry", result.ID, map[string]any{
		"task_id": req.TaskID,
	})

	response.Created(w, "Timer started", result)
}

// Stop implements TrackingHandler.
func (h *trackingHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.trackingService.Stop(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordAudit(r, h.auditRepo, employeeID, "timer.stop", "time_entry", result.ID, map[string]any{
		"duration_minutes": result.DurationMinutes,
	})

	response.SuccessWithMessage(w, "Timer stopped", result)
}

// GetActive implements TrackingHandler.
func (h *trackingHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.trackingService.GetActive(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TrackingHandler.
func (h *trackingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := tracking.TimeEntryFilter{EmployeeID: &employeeID}
	if taskID := r.URL.Query().Get("task_id"); taskID != "" {
		filter.TaskID = &taskID
	}

	result, err := h.trackingService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
