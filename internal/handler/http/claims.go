package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/auditlog"
)

// employeeIDFromContext extracts the authenticated employee from the verified
// token claims.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// clientIP strips the port from RemoteAddr. Good enough without a proxy in
// front; RealIP middleware would overwrite RemoteAddr anyway.
func clientIP(r *http.Request) *string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return nil
	}
	return &host
}

// recordAudit writes an audit trail entry for a completed mutation. Failures
// are logged, never surfaced to the caller.
func recordAudit(r *http.Request, repo auditlog.AuditLogRepository, userID, action, entityType, entityID string, metadata map[string]any) {
	if repo == nil {
		return
	}

	_, err := repo.Create(r.Context(), auditlog.Entry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		IPAddress:  clientIP(r),
	})
	if err != nil {
		slog.Error("Failed to write audit log", "action", action, "entity_id", entityID, "error", err)
	}
}
