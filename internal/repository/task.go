package repository

import (
	"context"
	"errors"

	"github.com/jaekwang-park/task-scheduler-api/internal/model"
)

// ErrDuplicateID is returned by Create when the application-assigned task ID
// collides with an existing row.
var ErrDuplicateID = errors.New("duplicate task id")

// DateChange is one entry of a bulk date update.
type DateChange struct {
	TaskID  string
	NewDate string
}

type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error)
	// BulkUpdateDates applies every change in one transaction and returns the
	// number of rows updated. A missing task ID fails the whole batch.
	BulkUpdateDates(ctx context.Context, userID string, changes []DateChange) (int64, error)
}
