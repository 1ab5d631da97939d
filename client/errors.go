package client

import (
	"errors"
	"fmt"
)

// Kind classifies client errors.
type Kind int

const (
	// KindConfig indicates a missing or malformed base URL or base path.
	KindConfig Kind = iota
	// KindTimeout indicates a request or connection timeout.
	KindTimeout
	// KindConnection indicates a connection failure (refused, DNS, reset).
	KindConnection
	// KindAuth indicates the authentication endpoint rejected the credentials.
	KindAuth
	// KindEncode indicates the request body could not be encoded.
	KindEncode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindAuth:
		return "auth"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is a structured client error.
//
// HTTP responses with a non-success status are deliberately NOT represented
// as errors: they resolve as normal envelopes. Error is reserved for
// exchanges that never completed, rejected authentication, and construction
// failures.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Message describes the error.
	Message string
	// StatusCode is set for authentication failures (0 otherwise).
	StatusCode int
	// Body is the raw response body for authentication failures (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("client: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

// NewTimeoutError creates a timeout error wrapping the transport error.
func NewTimeoutError(err error) *Error {
	return &Error{Kind: KindTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error wrapping the transport error.
func NewConnectionError(err error) *Error {
	return &Error{Kind: KindConnection, Message: err.Error(), Err: err}
}

// NewAuthError creates an authentication error for a rejected login.
func NewAuthError(statusCode int, body []byte) *Error {
	return &Error{
		Kind:       KindAuth,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewEncodeError creates an error for a request body that could not be encoded.
func NewEncodeError(err error) *Error {
	return &Error{Kind: KindEncode, Message: err.Error(), Err: err}
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConfig
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConnection
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth
}

// IsConnectivity checks if an error means the exchange never completed
// (timeout or connection failure).
func IsConnectivity(err error) bool {
	return IsTimeout(err) || IsConnection(err)
}
