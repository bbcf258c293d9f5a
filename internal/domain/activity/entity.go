package activity

import (
	"time"
)

// EventType classifies a raw activity signal reported by the desktop agent.
// Unknown values are stored as-is; the reaction policy simply ignores them.
type EventType string

const (
	EventActive          EventType = "ACTIVE"
	EventIdle            EventType = "IDLE"
	EventLock            EventType = "LOCK"
	EventTrackingStarted EventType = "TRACKING_STARTED"
	EventTrackingStopped EventType = "TRACKING_STOPPED"
)

// Event is one append-only activity signal. Events are immutable once
// created and ordered by CreatedAt.
type Event struct {
	ID         string
	EmployeeID string
	Type       EventType
	Metadata   Metadata
	CreatedAt  time.Time
}

// Metadata is an open map of JSON primitives carried alongside a signal
// (idle duration, keystroke counts, foreground app, ...). Stored as JSONB.
type Metadata map[string]any

// IdleDuration reads the agent-reported idle duration, which arrives in
// milliseconds. Returns false when the key is absent or not numeric.
func (m Metadata) IdleDuration() (time.Duration, bool) {
	raw, ok := m["idleDuration"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return time.Duration(v) * time.Millisecond, true
	case int:
		return time.Duration(v) * time.Millisecond, true
	case int64:
		return time.Duration(v) * time.Millisecond, true
	}
	return 0, false
}
