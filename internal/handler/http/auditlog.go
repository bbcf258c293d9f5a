package http

import (
	"net/http"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/auditlog"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http/response"
)

type AuditLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditLogHandlerImpl struct {
	auditRepo auditlog.AuditLogRepository
}

func NewAuditLogHandler(auditRepo auditlog.AuditLogRepository) AuditLogHandler {
	return &auditLogHandlerImpl{auditRepo: auditRepo}
}

// List implements AuditLogHandler.
func (h *auditLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	if _, err := employeeIDFromContext(r.Context()); err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var filter auditlog.Filter
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if entityType := r.URL.Query().Get("entity_type"); entityType != "" {
		filter.EntityType = &entityType
	}

	entries, err := h.auditRepo.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
