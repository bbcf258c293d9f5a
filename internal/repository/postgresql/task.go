package postgresql

import (
	"context"
	"fmt"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/task"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

// IncrementTimeSpent implements task.TaskRepository.
//
// The increment is relative so concurrent closes against the same task
// cannot lose each other's minutes.
func (r *taskRepository) IncrementTimeSpent(ctx context.Context, taskID string, minutes int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET time_spent = time_spent + $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, taskID, minutes)
	if err != nil {
		return fmt.Errorf("failed to increment task time: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}
