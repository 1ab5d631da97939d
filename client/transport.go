package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/http2"
)

// RequestIDHeader carries the generated per-request identifier.
const RequestIDHeader = "X-Request-Id"

// RawResponse is the transport-level result of a completed exchange:
// the (status, headers, body) triple exactly as the server delivered it.
type RawResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, including repeated names, as
	// parsed by net/http.
	Headers http.Header
	// Body is the raw response body.
	Body []byte
}

// Transport owns transport-level configuration (base URL, default timeout,
// default headers) and executes single HTTP exchanges. It carries no
// business logic and is safe for concurrent use; connection pooling is
// handled by the underlying http.Transport.
type Transport struct {
	httpClient *http.Client
	config     Config
}

// NewTransport creates a Transport from the given configuration.
func NewTransport(cfg Config) (*Transport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, NewConfigError(fmt.Sprintf("configure http2: %v", err))
		}
	}

	// The default timeout is enforced per request via context in Do, not
	// on the http.Client: a per-call Request.Timeout must be able to
	// extend it, and context expiry keeps timeouts classified as such.
	return &Transport{
		httpClient: &http.Client{
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// Do executes a single HTTP exchange. Any HTTP response, success or failure,
// returns a non-nil RawResponse and a nil error. An error is returned only
// when the exchange could not complete: timeouts map to KindTimeout,
// everything else connection-level to KindConnection.
func (t *Transport) Do(ctx context.Context, req Request) (*RawResponse, error) {
	// Per-call timeout wins over the transport default.
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = t.config.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Config returns the transport's configuration.
func (t *Transport) Config() Config {
	return t.config
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *Transport) Unwrap() *http.Client {
	return t.httpClient
}

// Close releases idle connections held by the transport.
func (t *Transport) Close() {
	t.httpClient.CloseIdleConnections()
}

// buildRequest constructs an *http.Request from the transport config and request.
func (t *Transport) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if t.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(t.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewEncodeError(fmt.Errorf("encode body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	// Default headers first, then request-specific overrides.
	for k, v := range t.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if httpReq.Header.Get("User-Agent") == "" && t.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.config.UserAgent)
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
