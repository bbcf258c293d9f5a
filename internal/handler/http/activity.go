package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	trackingService tracking.TrackingService
}

func NewActivityHandler(trackingService tracking.TrackingService) ActivityHandler {
	return &activityHandlerImpl{
		trackingService: trackingService,
	}
}

// reportActivityPayload is the shape the desktop agent sends. Everything
// beyond the type is folded into event metadata.
type reportActivityPayload struct {
	Type          string  `json:"type"`
	Timestamp     *string `json:"timestamp,omitempty"`
	IdleDuration  *int64  `json:"idleDuration,omitempty"` // milliseconds
	Keystrokes    *int    `json:"keystrokes,omitempty"`
	MouseClicks   *int    `json:"mouseClicks,omitempty"`
	CurrentApp    *string `json:"currentApp,omitempty"`
	IsTimerActive *bool   `json:"isTimerActive,omitempty"`
}

// Report implements ActivityHandler.
func (h *activityHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var payload reportActivityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	metadata := activity.Metadata{}
	if payload.Timestamp != nil {
		metadata["timestamp"] = *payload.Timestamp
	}
	if payload.IdleDuration != nil {
		metadata["idleDuration"] = *payload.IdleDuration
	}
	if payload.Keystrokes != nil {
		metadata["keystrokes"] = *payload.Keystrokes
	}
	if payload.MouseClicks != nil {
		metadata["mouseClicks"] = *payload.MouseClicks
	}
	if payload.CurrentApp != nil {
		metadata["currentApp"] = *payload.CurrentApp
	}
	if payload.IsTimerActive != nil {
		metadata["isTimerActive"] = *payload.IsTimerActive
	}

	req := tracking.ReportActivityRequest{
		EmployeeID: employeeID,
		Type:       payload.Type,
		Metadata:   metadata,
	}

	if err := h.trackingService.ReportActivity(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity recorded", nil)
}
