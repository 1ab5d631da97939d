package client

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope wraps a completed HTTP exchange in a uniform shape for test
// assertions: status code, decoded body of type T, response headers, and
// measured round-trip duration.
//
// An Envelope is constructed once per request and never mutated afterwards;
// the caller that receives it is its sole owner.
type Envelope[T any] struct {
	// Status is the HTTP status code as reported by the transport.
	Status int
	// Data is the response body decoded into T. It is nil when the server
	// returned no body or a body that does not decode into T; consumers
	// must nil-check before dereferencing.
	Data *T
	// Headers are the response headers as delivered by the transport.
	Headers http.Header
	// Duration is the elapsed wall-clock time between dispatch and
	// settlement, measured on the monotonic clock. It is populated for
	// every completed exchange, success or HTTP-level failure.
	Duration time.Duration
}

// Millis returns the response time in whole milliseconds.
func (e *Envelope[T]) Millis() int64 {
	return e.Duration.Milliseconds()
}

// IsSuccess returns true if the status code is 2xx.
func (e *Envelope[T]) IsSuccess() bool {
	return e.Status >= 200 && e.Status < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (e *Envelope[T]) IsError() bool {
	return e.Status >= 400
}

// newEnvelope assembles an Envelope from a raw response. Decode failures are
// silent by contract: Data stays nil and the caller inspects Status instead.
func newEnvelope[T any](raw *RawResponse, elapsed time.Duration) *Envelope[T] {
	env := &Envelope[T]{
		Status:   raw.StatusCode,
		Headers:  raw.Headers,
		Duration: elapsed,
	}
	if len(raw.Body) > 0 {
		var data T
		if err := json.Unmarshal(raw.Body, &data); err == nil {
			env.Data = &data
		}
	}
	return env
}
