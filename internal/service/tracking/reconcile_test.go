package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
)

func event(t activity.EventType, at time.Time) activity.Event {
	return activity.Event{Type: t, CreatedAt: at}
}

func TestWorkedMinutes_NoEventsFullDuration(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	assert.InDelta(t, 45.0, WorkedMinutes(start, end, nil), 0.001)
}

func TestWorkedMinutes_IdlePeriodExcluded(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)

	events := []activity.Event{
		event(activity.EventIdle, start.Add(10*time.Minute)),
		event(activity.EventActive, start.Add(15*time.Minute)),
	}

	// 10 active + 5 idle + 5 active
	assert.InDelta(t, 15.0, WorkedMinutes(start, end, events), 0.001)
}

func TestWorkedMinutes_LockEventDoesNotCloseSegment(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	// Only ACTIVE and IDLE drive the walk; a lock signal alone does not
	// discount time.
	events := []activity.Event{
		event(activity.EventLock, start.Add(30*time.Minute)),
	}

	assert.InDelta(t, 60.0, WorkedMinutes(start, end, events), 0.001)
}

func TestWorkedMinutes_DuplicateStateEventsAreNoOps(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	events := []activity.Event{
		event(activity.EventActive, start.Add(5*time.Minute)),
		event(activity.EventActive, start.Add(8*time.Minute)),
		event(activity.EventIdle, start.Add(10*time.Minute)),
		event(activity.EventIdle, start.Add(12*time.Minute)),
		event(activity.EventActive, start.Add(20*time.Minute)),
	}

	// 10 active, idle until 20, then 10 more active
	assert.InDelta(t, 20.0, WorkedMinutes(start, end, events), 0.001)
}

func TestWorkedMinutes_IdleAtEndStaysExcluded(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	events := []activity.Event{
		event(activity.EventIdle, start.Add(40*time.Minute)),
	}

	assert.InDelta(t, 40.0, WorkedMinutes(start, end, events), 0.001)
}

func TestWorkedMinutes_ImmediatelyIdleIsZero(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	events := []activity.Event{
		event(activity.EventIdle, start),
	}

	assert.Equal(t, 0.0, WorkedMinutes(start, end, events))
}

func TestWorkedMinutes_OutOfOrderTimestampClampedToZero(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	// Idle event timestamped before the timer started.
	events := []activity.Event{
		event(activity.EventIdle, start.Add(-5*time.Minute)),
	}

	got := WorkedMinutes(start, end, events)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestReconciledDuration_UsesReconciledWhenBelowRaw(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	events := []activity.Event{
		event(activity.EventIdle, start.Add(20*time.Minute)),
		event(activity.EventActive, start.Add(40*time.Minute)),
	}

	assert.Equal(t, 40, reconciledDuration(start, end, events))
}

func TestReconciledDuration_LockOnlyRunGetsFullCredit(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	// No IDLE signal was ever recorded, so the full hour is credited even
	// though the screen locked early on.
	events := []activity.Event{
		event(activity.EventLock, start.Add(10*time.Minute)),
	}

	assert.Equal(t, 60, reconciledDuration(start, end, events))
}

func TestReconciledDuration_FallsBackToRawWithoutIdle(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(60 * time.Minute)

	assert.Equal(t, 60, reconciledDuration(start, end, nil))
}

func TestReconciledDuration_FullyIdleFallsBackToRaw(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	events := []activity.Event{
		event(activity.EventIdle, start),
	}

	// Zero worked minutes is not a credible reconciliation, keep raw.
	assert.Equal(t, 30, reconciledDuration(start, end, events))
}

func TestReconciledDuration_NegativeElapsedClampedToZero(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(-5 * time.Minute)

	assert.Equal(t, 0, reconciledDuration(start, end, nil))
}

func TestReconciledDuration_SubMinuteRunIsZero(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Second)

	assert.Equal(t, 0, reconciledDuration(start, end, nil))
}
