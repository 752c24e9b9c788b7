package http

import (
	"net/http"

	"github.com/jaekwang-park/task-scheduler-api/internal/http/handler"
	"github.com/jaekwang-park/task-scheduler-api/internal/service"
)

func NewRouter(taskSvc *service.TaskService, authSvc *service.AuthService) http.Handler {
	mux := http.NewServeMux()

	health := handler.NewHealthHandler()
	mux.Handle("/api/health", health)

	taskHandler := handler.NewTaskHandler(taskSvc)
	mux.Handle("/api/tasks", taskHandler)
	mux.Handle("/api/tasks/", taskHandler)

	if authSvc != nil {
		authHandler := handler.NewAuthHandler(authSvc)
		mux.Handle("/api/auth/", authHandler)
	}

	return mux
}
