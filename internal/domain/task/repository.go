package task

import (
	"context"
)

// TaskRepository is the narrow slice of the task aggregate this subsystem
// needs: a relative increment of the accumulated time. Increments must be
// relative (time_spent = time_spent + delta) so concurrent closes against
// the same task never lose an update.
type TaskRepository interface {
	IncrementTimeSpent(ctx context.Context, taskID string, minutes int) error
}
