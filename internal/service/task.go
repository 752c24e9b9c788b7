package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaekwang-park/task-scheduler-api/internal/model"
	"github.com/jaekwang-park/task-scheduler-api/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	maxTextLen = 200
)

// validateDate checks that s is either empty (reminder task) or a real
// calendar date in YYYY-MM-DD form.
func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// shiftDate moves a YYYY-MM-DD date by the given number of calendar days.
// Month/year boundaries and leap days follow standard calendar arithmetic.
func shiftDate(date string, days int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: invalid stored date %q", ErrInvalidInput, date)
	}
	return t.AddDate(0, 0, days).Format(dateLayout), nil
}

type CreateTaskInput struct {
	Text string
	Date string
}

type UpdateTaskInput struct {
	Text string
	Date string
}

// ShiftResult reports the outcome of a bulk date shift.
type ShiftResult struct {
	ShiftedCount int          `json:"shiftedCount"`
	UpdatedTasks []model.Task `json:"updatedTasks"`
}

// PageSizes carries the fixed page sizes for the paged list views, injected
// from configuration.
type PageSizes struct {
	Tasks     int
	Reminders int
}

type TaskService struct {
	repo  repository.TaskRepository
	pages PageSizes
}

func NewTaskService(repo repository.TaskRepository, pages PageSizes) *TaskService {
	return &TaskService{repo: repo, pages: pages}
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return model.Task{}, fmt.Errorf("%w: task text is required", ErrInvalidInput)
	}
	if len(text) > maxTextLen {
		return model.Task{}, fmt.Errorf("%w: task text exceeds %d characters", ErrInvalidInput, maxTextLen)
	}
	if err := validateDate(input.Date); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:        model.NewTaskID(),
		UserID:    userID,
		Text:      text,
		Date:      input.Date,
		Completed: false,
		CreatedAt: time.Now().UnixMilli(),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (model.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return model.Task{}, fmt.Errorf("%w: task text is required", ErrInvalidInput)
	}
	if len(text) > maxTextLen {
		return model.Task{}, fmt.Errorf("%w: task text exceeds %d characters", ErrInvalidInput, maxTextLen)
	}
	if err := validateDate(input.Date); err != nil {
		return model.Task{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for update: %w", err)
	}

	// Edits never change completion state.
	existing.Text = text
	existing.Date = input.Date

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (model.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for toggle: %w", err)
	}

	existing.Completed = !existing.Completed

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to toggle task: %w", err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List returns the owner's tasks under the given status filter in display
// order. page == 0 means no pagination.
func (s *TaskService) List(ctx context.Context, userID string, filter model.StatusFilter, page int) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	model.SortTasks(tasks)
	if page > 0 {
		tasks = model.Page(tasks, page, s.pages.Tasks)
	}
	return tasks, nil
}

// Reminders returns the owner's dateless tasks, oldest first. page == 0 means
// no pagination.
func (s *TaskService) Reminders(ctx context.Context, userID string, page int) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, userID, model.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	reminders := model.ReminderTasks(tasks)
	if page > 0 {
		reminders = model.Page(reminders, page, s.pages.Reminders)
	}
	return reminders, nil
}

// Grouped partitions the owner's dated tasks into per-date buckets for the
// calendar view.
func (s *TaskService) Grouped(ctx context.Context, userID string, filter model.StatusFilter) (model.TaskGroups, error) {
	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return model.TaskGroups{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return model.GroupByDate(tasks), nil
}

// Shift moves every incomplete, dated task of the owner by days calendar
// days. Completed and dateless tasks are left untouched. All new dates are
// computed before any write; the writes happen in one transaction, so a
// failure leaves every date as it was.
func (s *TaskService) Shift(ctx context.Context, userID string, days int) (ShiftResult, error) {
	tasks, err := s.repo.List(ctx, userID, model.FilterActive)
	if err != nil {
		return ShiftResult{}, fmt.Errorf("failed to list tasks for shift: %w", err)
	}

	changes := make([]repository.DateChange, 0, len(tasks))
	updated := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsReminder() {
			continue
		}
		newDate, err := shiftDate(task.Date, days)
		if err != nil {
			return ShiftResult{}, err
		}
		changes = append(changes, repository.DateChange{TaskID: task.ID, NewDate: newDate})
		task.Date = newDate
		updated = append(updated, task)
	}

	if len(changes) == 0 {
		return ShiftResult{ShiftedCount: 0, UpdatedTasks: []model.Task{}}, nil
	}

	count, err := s.repo.BulkUpdateDates(ctx, userID, changes)
	if err != nil {
		return ShiftResult{}, fmt.Errorf("failed to apply date shift: %w", err)
	}

	model.SortTasks(updated)
	return ShiftResult{ShiftedCount: int(count), UpdatedTasks: updated}, nil
}
