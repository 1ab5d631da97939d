package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment is the process-wide configuration shared by every service.
type Environment struct {
	// BaseURL is the root URL of the system under test.
	BaseURL string `mapstructure:"api_base_url" validate:"required,url"`

	// Timeout is the default per-request timeout.
	Timeout time.Duration `mapstructure:"api_timeout"`

	// AuthPath is the login endpoint path used by Authenticate.
	AuthPath string `mapstructure:"api_auth_path"`

	// TokenField is the field extracted from the login response body.
	TokenField string `mapstructure:"api_token_field"`

	// LogLevel controls the kit's loggers.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (e *Environment) ApplyDefaults() {
	if e.Timeout <= 0 {
		e.Timeout = 30 * time.Second
	}
	if e.AuthPath == "" {
		e.AuthPath = "/auth/login"
	}
	if e.TokenField == "" {
		e.TokenField = "token"
	}
	if e.LogLevel == "" {
		e.LogLevel = "info"
	}
}

var (
	once sync.Once
	env  *Environment
	err  error
)

// Get returns the memoized process environment, loading it on first call.
// A missing or malformed base URL is a fatal configuration error surfaced
// to the first caller (and every caller after it).
func Get() (*Environment, error) {
	once.Do(func() {
		env, err = Load()
	})
	return env, err
}

// Load reads configuration from a .env file (if present) and environment
// variables. Most callers want Get; Load always re-reads.
func Load(opts ...LoadOption) (*Environment, error) {
	var lo loadOptions
	for _, opt := range opts {
		opt(&lo)
	}

	// A missing .env file is fine; real env vars still apply.
	if lo.envFile != "" {
		_ = godotenv.Load(lo.envFile)
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{"api_base_url", "api_timeout", "api_auth_path", "api_token_field", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var e Environment
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("config: unmarshal environment: %w", err)
	}
	e.ApplyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&e); err != nil {
		return nil, fmt.Errorf("config: invalid environment (is API_BASE_URL set?): %w", err)
	}

	return &e, nil
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	envFile string
}

// WithEnvFile reads the given .env file instead of the default lookup.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) { o.envFile = path }
}

// Reset clears the memoized environment so the next Get reloads it.
// Intended for tests that mutate the process environment.
func Reset() {
	once = sync.Once{}
	env = nil
	err = nil
}
