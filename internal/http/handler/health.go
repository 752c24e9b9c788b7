package handler

import "net/http"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "only GET is allowed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Task Scheduler API is running",
	})
}
