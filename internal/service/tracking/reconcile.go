package tracking

import (
	"time"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
)

// WorkedMinutes walks the activity stream for one timer run and sums the
// minutes the employee was actually active.
//
// Only ACTIVE and IDLE events drive the walk. The employee is assumed active
// from startTime until an IDLE event says otherwise; an ACTIVE event reopens
// the segment. Duplicate state events are no-ops. A segment still open at
// endTime is closed there. Each segment contributes at least zero even when
// event timestamps are out of order.
func WorkedMinutes(startTime, endTime time.Time, events []activity.Event) float64 {
	active := true
	segmentStart := startTime
	var worked time.Duration

	for _, event := range events {
		switch event.Type {
		case activity.EventIdle:
			if active {
				if d := event.CreatedAt.Sub(segmentStart); d > 0 {
					worked += d
				}
				active = false
			}
		case activity.EventActive:
			if !active {
				segmentStart = event.CreatedAt
				active = true
			}
		}
	}

	if active {
		if d := endTime.Sub(segmentStart); d > 0 {
			worked += d
		}
	}

	return worked.Minutes()
}

// reconciledDuration picks the duration to persist for a closing entry.
// The reconciled figure is used only when it is a strict improvement: above
// zero and below the raw elapsed minutes. Anything else (no idle recorded,
// clock skew, fully idle run) falls back to raw.
func reconciledDuration(startTime, endTime time.Time, events []activity.Event) int {
	raw := int(endTime.Sub(startTime) / time.Minute)
	if raw < 0 {
		raw = 0
	}

	worked := WorkedMinutes(startTime, endTime, events)
	if worked > 0 && worked < float64(raw) {
		return int(worked)
	}

	return raw
}
