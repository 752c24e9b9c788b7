package config_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/jaekwang-park/task-scheduler-api/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "APP_ENV", "AUTH_DEV_MODE", "LOG_LEVEL",
		"CORS_ALLOW_ALL", "CORS_ALLOWED_ORIGINS", "TASKS_PAGE_SIZE", "REMINDERS_PAGE_SIZE",
		"COGNITO_REGION", "COGNITO_USER_POOL_ID", "COGNITO_APP_CLIENT_ID", "COGNITO_APP_CLIENT_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ServerPort", cfg.ServerPort, "8080"},
		{"AppEnv", cfg.AppEnv, "local"},
		{"DB.Host", cfg.DB.Host, "localhost"},
		{"DB.Port", cfg.DB.Port, "5432"},
		{"DB.User", cfg.DB.User, "scheduler"},
		{"DB.Password", cfg.DB.Password, "scheduler"},
		{"DB.Name", cfg.DB.Name, "scheduler"},
		{"DB.SSLMode", cfg.DB.SSLMode, "disable"},
		{"Cognito.Region", cfg.Cognito.Region, "ap-northeast-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	t.Run("AuthDevMode", func(t *testing.T) {
		if cfg.AuthDevMode {
			t.Errorf("got AuthDevMode=true, want false")
		}
	})

	t.Run("PageSizes", func(t *testing.T) {
		if cfg.Pages.Tasks != 10 {
			t.Errorf("got Pages.Tasks=%d, want 10", cfg.Pages.Tasks)
		}
		if cfg.Pages.Reminders != 5 {
			t.Errorf("got Pages.Reminders=%d, want 5", cfg.Pages.Reminders)
		}
	})

	t.Run("CORS", func(t *testing.T) {
		if cfg.CORS.AllowAll {
			t.Errorf("got CORS.AllowAll=true, want false")
		}
		if len(cfg.CORS.AllowedOrigins) != 0 {
			t.Errorf("got %d allowed origins, want 0", len(cfg.CORS.AllowedOrigins))
		}
	})
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "admin")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mydb")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("APP_ENV", "alpha")
	t.Setenv("AUTH_DEV_MODE", "false")
	t.Setenv("TASKS_PAGE_SIZE", "25")
	t.Setenv("REMINDERS_PAGE_SIZE", "8")
	t.Setenv("COGNITO_REGION", "us-east-1")
	t.Setenv("COGNITO_USER_POOL_ID", "pool-123")
	t.Setenv("COGNITO_APP_CLIENT_ID", "client-456")
	t.Setenv("COGNITO_APP_CLIENT_SECRET", "secret-789")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ServerPort", cfg.ServerPort, "9090"},
		{"DB.Host", cfg.DB.Host, "db.example.com"},
		{"DB.Port", cfg.DB.Port, "5433"},
		{"DB.User", cfg.DB.User, "admin"},
		{"DB.Password", cfg.DB.Password, "secret"},
		{"DB.Name", cfg.DB.Name, "mydb"},
		{"DB.SSLMode", cfg.DB.SSLMode, "require"},
		{"AppEnv", cfg.AppEnv, "alpha"},
		{"Cognito.Region", cfg.Cognito.Region, "us-east-1"},
		{"Cognito.UserPoolID", cfg.Cognito.UserPoolID, "pool-123"},
		{"Cognito.AppClientID", cfg.Cognito.AppClientID, "client-456"},
		{"Cognito.AppClientSecret", cfg.Cognito.AppClientSecret, "secret-789"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	t.Run("PageSizes", func(t *testing.T) {
		if cfg.Pages.Tasks != 25 {
			t.Errorf("got Pages.Tasks=%d, want 25", cfg.Pages.Tasks)
		}
		if cfg.Pages.Reminders != 8 {
			t.Errorf("got Pages.Reminders=%d, want 8", cfg.Pages.Reminders)
		}
	})
}

func TestLoad_CORSOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "https://app.example.com", []string{"https://app.example.com"}},
		{
			"multiple with spaces",
			"http://localhost:5173, https://app.example.com ,",
			[]string{"http://localhost:5173", "https://app.example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CORS_ALLOWED_ORIGINS", tt.value)

			cfg := config.Load()
			if len(cfg.CORS.AllowedOrigins) != len(tt.want) {
				t.Fatalf("got %d origins, want %d", len(cfg.CORS.AllowedOrigins), len(tt.want))
			}
			for i, origin := range tt.want {
				if cfg.CORS.AllowedOrigins[i] != origin {
					t.Errorf("origin[%d]=%q, want %q", i, cfg.CORS.AllowedOrigins[i], origin)
				}
			}
		})
	}
}

func TestCORSConfig_OriginAllowed(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173", "https://app.example.com"}}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"listed origin", "http://localhost:5173", true},
		{"second listed origin", "https://app.example.com", true},
		{"unlisted origin", "https://evil.example.com", false},
		{"empty origin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.OriginAllowed(tt.origin); got != tt.want {
				t.Errorf("OriginAllowed(%q)=%v, want %v", tt.origin, got, tt.want)
			}
		})
	}

	t.Run("allow all", func(t *testing.T) {
		all := config.CORSConfig{AllowAll: true}
		if !all.OriginAllowed("https://anything.example.com") {
			t.Error("AllowAll should accept any origin")
		}
	})
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantSub  string
	}{
		{
			name:     "simple password",
			password: "scheduler",
			wantSub:  "scheduler:scheduler@",
		},
		{
			name:     "password with special chars",
			password: "p@ss/w#rd?",
			wantSub:  "scheduler:p%40ss%2Fw%23rd%3F@",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_PASSWORD", tt.password)

			cfg := config.Load()
			dsn := cfg.DB.DSN()

			if !strings.Contains(dsn, tt.wantSub) {
				t.Errorf("DSN=%s, want to contain %s", dsn, tt.wantSub)
			}
			if !strings.HasPrefix(dsn, "postgres://") {
				t.Errorf("DSN=%s, want postgres:// prefix", dsn)
			}
			if !strings.Contains(dsn, "sslmode=disable") {
				t.Errorf("DSN=%s, want sslmode=disable", dsn)
			}
		})
	}
}

func TestConfig_ParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Warn", "Warn", slog.LevelWarn},
		{"empty defaults to info", "", slog.LevelInfo},
		{"invalid defaults to info", "verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LOG_LEVEL", tt.value)

			cfg := config.Load()
			got := cfg.ParseLogLevel()

			if got != tt.want {
				t.Errorf("LOG_LEVEL=%q: got %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		env      string
		devMode  string
		poolID   string
		clientID string
		extra    map[string]string
		wantErr  string
	}{
		{name: "valid local dev mode", port: "8080", env: "local", devMode: "true"},
		{name: "valid alpha", port: "8080", env: "alpha", devMode: "false", poolID: "pool-1", clientID: "client-1"},
		{name: "valid beta", port: "9090", env: "beta", devMode: "false", poolID: "pool-1", clientID: "client-1"},
		{name: "valid prod", port: "80", env: "prod", devMode: "false", poolID: "pool-1", clientID: "client-1"},
		{name: "invalid port", port: "abc", env: "local", devMode: "true", wantErr: "invalid SERVER_PORT"},
		{name: "invalid env", port: "8080", env: "staging", devMode: "false", wantErr: "invalid APP_ENV"},
		{name: "dev mode in alpha", port: "8080", env: "alpha", devMode: "true", wantErr: "AUTH_DEV_MODE must not be enabled"},
		{name: "dev mode in prod", port: "8080", env: "prod", devMode: "true", wantErr: "AUTH_DEV_MODE must not be enabled"},
		{
			name: "cors allow all in prod", port: "8080", env: "prod", devMode: "false",
			poolID: "pool-1", clientID: "client-1",
			extra:   map[string]string{"CORS_ALLOW_ALL": "true"},
			wantErr: "CORS_ALLOW_ALL must not be enabled",
		},
		{name: "missing pool id non-dev", port: "8080", env: "local", devMode: "false", clientID: "client-1", wantErr: "COGNITO_USER_POOL_ID is required"},
		{name: "missing client id non-dev", port: "8080", env: "local", devMode: "false", poolID: "pool-1", wantErr: "COGNITO_APP_CLIENT_ID is required"},
		{
			name: "zero tasks page size", port: "8080", env: "local", devMode: "true",
			extra:   map[string]string{"TASKS_PAGE_SIZE": "0"},
			wantErr: "TASKS_PAGE_SIZE must be positive",
		},
		{
			name: "negative reminders page size", port: "8080", env: "local", devMode: "true",
			extra:   map[string]string{"REMINDERS_PAGE_SIZE": "-1"},
			wantErr: "REMINDERS_PAGE_SIZE must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SERVER_PORT", tt.port)
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("AUTH_DEV_MODE", tt.devMode)
			if tt.poolID != "" {
				t.Setenv("COGNITO_USER_POOL_ID", tt.poolID)
			}
			if tt.clientID != "" {
				t.Setenv("COGNITO_APP_CLIENT_ID", tt.clientID)
			}
			for k, v := range tt.extra {
				t.Setenv(k, v)
			}

			cfg := config.Load()
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}
