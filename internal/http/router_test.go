package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/task-scheduler-api/internal/cognito"
	apihttp "github.com/jaekwang-park/task-scheduler-api/internal/http"
	"github.com/jaekwang-park/task-scheduler-api/internal/model"
	"github.com/jaekwang-park/task-scheduler-api/internal/repository"
	"github.com/jaekwang-park/task-scheduler-api/internal/service"
)

// mockTaskRepo for router tests
type mockTaskRepo struct{}

func (m *mockTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	return model.Task{}, fmt.Errorf("not found")
}
func (m *mockTaskRepo) Update(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	return nil
}
func (m *mockTaskRepo) List(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	return []model.Task{}, nil
}
func (m *mockTaskRepo) BulkUpdateDates(ctx context.Context, userID string, changes []repository.DateChange) (int64, error) {
	return 0, nil
}

// stubCognitoClient for router tests, never exercised past validation
type stubCognitoClient struct{}

func (s *stubCognitoClient) SignUp(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error) {
	return cognito.SignUpOutput{}, fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ConfirmSignUp(ctx context.Context, input cognito.ConfirmSignUpInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ResendConfirmationCode(ctx context.Context, input cognito.ResendCodeInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) Login(ctx context.Context, input cognito.LoginInput) (cognito.AuthOutput, error) {
	return cognito.AuthOutput{}, fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) RefreshTokens(ctx context.Context, input cognito.RefreshInput) (cognito.AuthOutput, error) {
	return cognito.AuthOutput{}, fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ForgotPassword(ctx context.Context, input cognito.ForgotPasswordInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ConfirmForgotPassword(ctx context.Context, input cognito.ConfirmForgotPasswordInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ChangePassword(ctx context.Context, input cognito.ChangePasswordInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) GlobalSignOut(ctx context.Context, input cognito.GlobalSignOutInput) error {
	return fmt.Errorf("not implemented")
}

func newTestTaskSvc() *service.TaskService {
	return service.NewTaskService(&mockTaskRepo{}, service.PageSizes{Tasks: 10, Reminders: 5})
}

func newTestAuthSvc() *service.AuthService {
	return service.NewAuthService(&stubCognitoClient{}, nil)
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := apihttp.NewRouter(newTestTaskSvc(), newTestAuthSvc())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "OK" {
		t.Errorf("expected status=OK, got %s", result["status"])
	}
}

func TestRouter_TaskEndpointsRegistered(t *testing.T) {
	router := apihttp.NewRouter(newTestTaskSvc(), newTestAuthSvc())

	// Auth is the middleware's job; the router serves without it
	paths := []string{
		"/api/tasks",
		"/api/tasks/filter/active",
		"/api/tasks/reminders",
		"/api/tasks/grouped",
	}

	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d (body: %s)", p, w.Code, w.Body.String())
		}
	}
}

func TestRouter_AuthEndpointRegistered(t *testing.T) {
	router := apihttp.NewRouter(newTestTaskSvc(), newTestAuthSvc())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code == http.StatusNotFound {
		t.Error("expected auth route to be registered, got 404")
	}
}

func TestRouter_NilAuthService(t *testing.T) {
	router := apihttp.NewRouter(newTestTaskSvc(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 when auth routes are disabled, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := apihttp.NewRouter(newTestTaskSvc(), newTestAuthSvc())

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
