package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9090")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_AUTH_PATH", "/session")
	t.Setenv("API_TOKEN_FIELD", "access_token")
	t.Setenv("LOG_LEVEL", "debug")

	env, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.BaseURL != "http://localhost:9090" {
		t.Errorf("BaseURL = %q", env.BaseURL)
	}
	if env.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", env.Timeout)
	}
	if env.AuthPath != "/session" {
		t.Errorf("AuthPath = %q", env.AuthPath)
	}
	if env.TokenField != "access_token" {
		t.Errorf("TokenField = %q", env.TokenField)
	}
	if env.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", env.LogLevel)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9090")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("API_AUTH_PATH", "")
	t.Setenv("API_TOKEN_FIELD", "")
	t.Setenv("LOG_LEVEL", "")

	env, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.Timeout != 30*time.Second {
		t.Errorf("expected 30s default, got %v", env.Timeout)
	}
	if env.AuthPath != "/auth/login" {
		t.Errorf("expected /auth/login default, got %q", env.AuthPath)
	}
	if env.TokenField != "token" {
		t.Errorf("expected token default, got %q", env.TokenField)
	}
	if env.LogLevel != "info" {
		t.Errorf("expected info default, got %q", env.LogLevel)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when API_BASE_URL is unset")
	}
}

func TestLoad_MalformedBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed base URL")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9090")
	t.Setenv("LOG_LEVEL", "shouting")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_AUTH_PATH", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "API_BASE_URL=http://envfile:8080\nAPI_AUTH_PATH=/login\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv does not override variables already present; the t.Setenv
	// calls above leave them empty so the file values apply.
	os.Unsetenv("API_BASE_URL")
	os.Unsetenv("API_AUTH_PATH")

	env, err := Load(WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.BaseURL != "http://envfile:8080" {
		t.Errorf("BaseURL = %q", env.BaseURL)
	}
	if env.AuthPath != "/login" {
		t.Errorf("AuthPath = %q", env.AuthPath)
	}
}

func TestGet_Memoizes(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("API_BASE_URL", "http://localhost:9090")

	first, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Changing the environment afterwards must not affect the memoized value.
	t.Setenv("API_BASE_URL", "http://other:1234")
	second, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first != second {
		t.Error("expected the same memoized instance")
	}
	if second.BaseURL != "http://localhost:9090" {
		t.Errorf("memoized BaseURL changed: %q", second.BaseURL)
	}
}

func TestGet_SurfacesError(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("API_BASE_URL", "")

	if _, err := Get(); err == nil {
		t.Fatal("expected error when base URL is missing")
	}
	// The error is memoized too.
	if _, err := Get(); err == nil {
		t.Fatal("expected memoized error")
	}
}
