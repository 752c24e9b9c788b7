package model

import (
	"sort"

	"github.com/google/uuid"
)

// StatusFilter selects tasks by completion state. Unknown values behave as FilterAll,
// matching what the frontend sends for /api/tasks/filter/{filter}.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f StatusFilter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Task is one to-do item. JSON field names are the wire contract with the
// existing frontend and must not change.
type Task struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

// IsReminder reports whether the task has no date. Reminder tasks never appear
// in date-grouped views and are never date-shifted.
func (t Task) IsReminder() bool {
	return t.Date == ""
}

// NewTaskID returns a fresh application-assigned task identifier.
func NewTaskID() string {
	return "task_" + uuid.NewString()
}

// SortTasks orders tasks in place: date ascending (lexicographic, which is
// chronological for YYYY-MM-DD), then incomplete before completed, then
// createdAt ascending.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return a.CreatedAt < b.CreatedAt
	})
}

// DatedTasks returns only tasks with a non-empty date, preserving order.
func DatedTasks(tasks []Task) []Task {
	dated := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsReminder() {
			dated = append(dated, t)
		}
	}
	return dated
}

// ReminderTasks returns only dateless tasks, ordered by createdAt ascending.
func ReminderTasks(tasks []Task) []Task {
	reminders := make([]Task, 0)
	for _, t := range tasks {
		if t.IsReminder() {
			reminders = append(reminders, t)
		}
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].CreatedAt < reminders[j].CreatedAt
	})
	return reminders
}

// TaskGroups is a partition of dated tasks into per-date buckets.
// Dates lists the bucket keys in ascending order.
type TaskGroups struct {
	Dates  []string          `json:"dates"`
	Groups map[string][]Task `json:"groups"`
}

// GroupByDate partitions dated tasks into buckets keyed by exact date string.
// Reminder tasks are excluded. Each bucket sorts incomplete-first then by
// createdAt; bucket keys come back ascending.
func GroupByDate(tasks []Task) TaskGroups {
	groups := make(map[string][]Task)
	for _, t := range tasks {
		if t.IsReminder() {
			continue
		}
		groups[t.Date] = append(groups[t.Date], t)
	}

	dates := make([]string, 0, len(groups))
	for date := range groups {
		SortTasks(groups[date])
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return TaskGroups{Dates: dates, Groups: groups}
}

// Page returns the 1-based page of the given fixed size. A page past the end
// yields an empty slice, not an error.
func Page(tasks []Task, page, size int) []Task {
	if page < 1 || size < 1 {
		return []Task{}
	}
	start := (page - 1) * size
	if start >= len(tasks) {
		return []Task{}
	}
	end := start + size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
