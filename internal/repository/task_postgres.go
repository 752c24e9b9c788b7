package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jaekwang-park/task-scheduler-api/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, text, date, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, text, date, completed, created_at`

	row := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Text, task.Date, task.Completed, task.CreatedAt,
	)

	created, err := scanTask(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return model.Task{}, ErrDuplicateID
		}
		return model.Task{}, err
	}
	return created, nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `
		SELECT id, user_id, text, date, completed, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET text = $1, date = $2, completed = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, text, date, completed, created_at`

	row := r.db.QueryRowContext(ctx, query,
		task.Text, task.Date, task.Completed, task.ID, task.UserID,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PostgresTaskRepository) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	args := []any{userID}

	query := `
		SELECT id, user_id, text, date, completed, created_at
		FROM tasks
		WHERE user_id = $1`

	switch filter {
	case model.FilterActive:
		query += " AND completed = false"
	case model.FilterCompleted:
		query += " AND completed = true"
	}

	query += " ORDER BY date ASC, completed ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *PostgresTaskRepository) BulkUpdateDates(ctx context.Context, userID string, changes []DateChange) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE tasks SET date = $1 WHERE id = $2 AND user_id = $3`

	var updated int64
	for _, change := range changes {
		result, err := tx.ExecContext(ctx, query, change.NewDate, change.TaskID, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to update date for task %s: %w", change.TaskID, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return 0, fmt.Errorf("task %s: %w", change.TaskID, sql.ErrNoRows)
		}
		updated += rows
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit date updates: %w", err)
	}

	return updated, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Date, &t.Completed, &t.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TaskRepository = (*PostgresTaskRepository)(nil)
