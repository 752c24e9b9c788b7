package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/task-scheduler-api/internal/config"
	"github.com/jaekwang-park/task-scheduler-api/internal/middleware"
	"github.com/jaekwang-park/task-scheduler-api/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, taskSvc *service.TaskService, authSvc *service.AuthService, auth *middleware.Auth, cors config.CORSConfig) *Server {
	router := NewRouter(taskSvc, authSvc)

	// Middleware chain: recovery -> logging -> cors -> auth -> router
	chain := middleware.Recovery(logger)(
		middleware.Logging(logger)(
			middleware.CORS(cors)(
				auth.Middleware(router),
			),
		),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
