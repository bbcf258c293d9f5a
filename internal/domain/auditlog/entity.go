package auditlog

import (
	"time"
)

// Entry is one audit trail record: who did what to which entity.
type Entry struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
	IPAddress  *string
	CreatedAt  time.Time
}
