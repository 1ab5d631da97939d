package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/apikit/version"
)

const defaultTimeout = 30 * time.Second

// Config configures a Transport.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	// A per-request timeout in RequestConfig takes precedence.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent on every request. Defaults to "apikit/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// EnableHTTP2 switches the transport to HTTP/2 where the server
	// supports it.
	EnableHTTP2 bool `yaml:"enable_http2" mapstructure:"enable_http2"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewConfigError("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigError(fmt.Sprintf("base URL %q is malformed: %v", c.BaseURL, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigError(fmt.Sprintf("base URL %q must use http or https", c.BaseURL))
	}
	if u.Host == "" {
		return NewConfigError(fmt.Sprintf("base URL %q has no host", c.BaseURL))
	}
	if c.Timeout <= 0 {
		return NewConfigError("timeout must be positive")
	}
	return nil
}
