package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jaekwang-park/task-scheduler-api/internal/middleware"
	"github.com/jaekwang-park/task-scheduler-api/internal/model"
	"github.com/jaekwang-park/task-scheduler-api/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ServeHTTP routes /api/tasks and its subpaths.
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/tasks")
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimRight(path, "/")

	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	switch {
	case head == "" && r.Method == http.MethodGet:
		h.handleList(w, r)
	case head == "" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case head == "":
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	case head == "filter":
		h.handleFiltered(w, r, subPath)
	case head == "reminders" && subPath == "":
		h.handleReminders(w, r)
	case head == "grouped" && subPath == "":
		h.handleGrouped(w, r)
	case head == "shift" && subPath == "":
		h.handleShift(w, r)
	case subPath == "toggle":
		h.handleToggle(w, r, head)
	case subPath == "":
		h.handleByID(w, r, head)
	default:
		WriteError(w, http.StatusNotFound, "Route not found")
	}
}

func (h *TaskHandler) handleByID(w http.ResponseWriter, r *http.Request, taskID string) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpdate(w, r, taskID)
	case http.MethodDelete:
		h.handleDelete(w, r, taskID)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	tasks, err := h.svc.List(r.Context(), userID, model.FilterAll, parsePage(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) handleFiltered(w http.ResponseWriter, r *http.Request, filter string) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := getUserID(r)

	// Unknown filter values fall back to the full list.
	tasks, err := h.svc.List(r.Context(), userID, model.ParseStatusFilter(filter), parsePage(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) handleReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := getUserID(r)

	tasks, err := h.svc.Reminders(r.Context(), userID, parsePage(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) handleGrouped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := getUserID(r)

	groups, err := h.svc.Grouped(r.Context(), userID, model.ParseStatusFilter(r.URL.Query().Get("filter")))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, groups)
}

type taskRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.svc.Create(r.Context(), userID, service.CreateTaskInput{
		Text: req.Text,
		Date: req.Date,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.svc.Update(r.Context(), userID, taskID, service.UpdateTaskInput{
		Text: req.Text,
		Date: req.Date,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleToggle(w http.ResponseWriter, r *http.Request, taskID string) {
	if r.Method != http.MethodPut {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := getUserID(r)

	task, err := h.svc.Toggle(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

type shiftRequest struct {
	Days *json.Number `json:"days"`
}

type shiftResponse struct {
	Message      string       `json:"message"`
	ShiftedCount int          `json:"shiftedCount"`
	UpdatedTasks []model.Task `json:"updatedTasks"`
}

func (h *TaskHandler) handleShift(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := getUserID(r)

	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Days == nil {
		WriteError(w, http.StatusBadRequest, "days is required")
		return
	}

	// Fractional or non-numeric days is a client bug, not a truncation case.
	days, err := strconv.Atoi(req.Days.String())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	result, err := h.svc.Shift(r.Context(), userID, days)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shiftResponse{
		Message:      "Tasks shifted successfully",
		ShiftedCount: result.ShiftedCount,
		UpdatedTasks: result.UpdatedTasks,
	})
}

// parsePage reads the optional 1-based page query parameter. 0 means unpaged.
func parsePage(r *http.Request) int {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 0
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0
	}
	return page
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "access denied")
	default:
		WriteError(w, http.StatusInternalServerError, "Something went wrong!")
	}
}
