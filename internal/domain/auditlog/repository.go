package auditlog

import (
	"context"
)

type Filter struct {
	UserID     *string
	EntityType *string
}

// AuditLogRepository records and lists audit trail entries. List is capped
// at 100 entries, newest first.
type AuditLogRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
