package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apikit/config"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
)

// Service is the per-resource request executor that concrete service models
// compose. It owns the resource base path, the default request
// configuration, and the authentication token for this instance.
//
// Service replaces a base-class hierarchy with composition: a model holds a
// *Service and calls the generic verb functions (Get, Post, ...) with paths
// relative to its resource.
type Service struct {
	name      string
	basePath  string
	transport *Transport
	defaults  RequestConfig

	tokens     *TokenHolder
	authPath   string
	tokenField string
	authHeader string
	authScheme string

	log     *logger.Logger
	metrics *observability.RequestMetrics
	tracing bool

	// optErr records a construction failure from an option so NewService
	// can return it instead of falling back to the environment.
	optErr error
}

// ServiceOption configures a Service at construction time.
type ServiceOption func(*Service)

// WithTransport supplies an explicit transport instead of building one from
// the process environment.
func WithTransport(t *Transport) ServiceOption {
	return func(s *Service) { s.transport = t }
}

// WithBaseURL builds the service's transport against the given base URL
// instead of the process environment. Mostly useful in tests. A malformed
// base URL fails the NewService call.
func WithBaseURL(baseURL string) ServiceOption {
	return func(s *Service) {
		t, err := NewTransport(Config{BaseURL: baseURL})
		if err != nil {
			s.optErr = err
			return
		}
		s.transport = t
	}
}

// WithName overrides the service name used in logs and metrics.
func WithName(name string) ServiceOption {
	return func(s *Service) { s.name = name }
}

// WithDefaults sets the service's default request configuration.
func WithDefaults(cfg RequestConfig) ServiceOption {
	return func(s *Service) { s.defaults = cfg }
}

// WithAuthEndpoint sets the login path and the name of the token field
// extracted from its response body.
func WithAuthEndpoint(path, tokenField string) ServiceOption {
	return func(s *Service) {
		s.authPath = path
		s.tokenField = tokenField
	}
}

// WithAuthHeader sets the header slot and scheme prefix the stored token is
// sent in. Defaults to "Authorization" with scheme "Bearer".
func WithAuthHeader(header, scheme string) ServiceOption {
	return func(s *Service) {
		s.authHeader = header
		s.authScheme = scheme
	}
}

// WithLogger supplies a logger; by default the global logger is used,
// tagged with the service name.
func WithLogger(log *logger.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithMetrics records request totals, latency, and errors on the given
// instruments.
func WithMetrics(m *observability.RequestMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithTracing wraps every dispatched request in an OpenTelemetry span.
func WithTracing() ServiceOption {
	return func(s *Service) { s.tracing = true }
}

// NewService creates a Service for the resource rooted at basePath. The
// process-wide base URL is read once from the environment (see the config
// package); its absence is a construction-time configuration error. Options
// may supply an explicit transport instead.
func NewService(basePath string, opts ...ServiceOption) (*Service, error) {
	basePath = normalizeBasePath(basePath)
	if basePath == "" {
		return nil, NewConfigError("base path is required")
	}

	s := &Service{
		basePath:   basePath,
		tokens:     &TokenHolder{},
		authPath:   defaultAuthPath,
		tokenField: defaultTokenField,
		authHeader: defaultAuthHeader,
		authScheme: defaultAuthScheme,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.optErr != nil {
		return nil, s.optErr
	}

	if s.transport == nil {
		env, err := config.Get()
		if err != nil {
			return nil, NewConfigError(err.Error())
		}
		t, err := NewTransport(Config{
			BaseURL: env.BaseURL,
			Timeout: env.Timeout,
		})
		if err != nil {
			return nil, err
		}
		s.transport = t
		if env.AuthPath != "" && s.authPath == defaultAuthPath {
			s.authPath = env.AuthPath
		}
		if env.TokenField != "" && s.tokenField == defaultTokenField {
			s.tokenField = env.TokenField
		}
	}

	if s.name == "" {
		s.name = strings.Trim(basePath, "/")
	}
	if s.log == nil {
		s.log = logger.WithComponent(s.name)
	}

	return s, nil
}

// BasePath returns the resource base path this service was constructed with.
func (s *Service) BasePath() string {
	return s.basePath
}

// Transport returns the underlying transport.
func (s *Service) Transport() *Transport {
	return s.transport
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, s *Service, path string, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON-encodable body.
func Post[T any](ctx context.Context, s *Service, path string, body any, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON-encodable body.
func Put[T any](ctx context.Context, s *Service, path string, body any, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON-encodable body.
func Patch[T any](ctx context.Context, s *Service, path string, body any, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request.
func Delete[T any](ctx context.Context, s *Service, path string, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodDelete, path, nil, opts...)
}

// Head performs a HEAD request. The envelope's Data is always nil.
func Head[T any](ctx context.Context, s *Service, path string, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodHead, path, nil, opts...)
}

// Options performs an OPTIONS request.
func Options[T any](ctx context.Context, s *Service, path string, opts ...RequestOption) (*Envelope[T], error) {
	return do[T](ctx, s, http.MethodOptions, path, nil, opts...)
}

// RequestOption configures a single verb call.
type RequestOption func(*RequestConfig)

// WithHeader adds a header override for this call.
func WithHeader(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// WithQuery adds a query parameter override for this call.
func WithQuery(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Query == nil {
			c.Query = make(map[string]string)
		}
		c.Query[key] = value
	}
}

// WithTimeout overrides the timeout for this call.
func WithTimeout(d time.Duration) RequestOption {
	return func(c *RequestConfig) { c.Timeout = d }
}

// WithConfig merges an entire per-call RequestConfig.
func WithConfig(cfg RequestConfig) RequestOption {
	return func(c *RequestConfig) { *c = c.Merge(&cfg) }
}

// do merges configuration, dispatches through the transport, times the
// exchange, and assembles the envelope. Any HTTP response resolves normally;
// only connectivity-level failures return an error.
func do[T any](ctx context.Context, s *Service, method, path string, body any, opts ...RequestOption) (*Envelope[T], error) {
	raw, elapsed, err := s.dispatch(ctx, method, s.resourcePath(path), body, opts)
	if err != nil {
		return nil, err
	}
	return newEnvelope[T](raw, elapsed), nil
}

// dispatch is the shared exchange path for verb calls and Authenticate.
func (s *Service) dispatch(ctx context.Context, method, fullPath string, body any, opts []RequestOption) (*RawResponse, time.Duration, error) {
	var callCfg RequestConfig
	for _, opt := range opts {
		opt(&callCfg)
	}
	merged := s.defaults.Merge(&callCfg)

	if tok, ok := s.tokens.Get(); ok {
		if _, set := merged.Headers[s.authHeader]; !set {
			if merged.Headers == nil {
				merged.Headers = make(map[string]string, 1)
			}
			merged.Headers[s.authHeader] = s.formatToken(tok)
		}
	}

	if s.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, observability.SpanHTTPRequest)
		defer span.End()
	}
	if s.metrics != nil {
		s.metrics.RecordStart(ctx)
	}

	start := time.Now()
	raw, err := s.transport.Do(ctx, Request{
		Method:  method,
		Path:    fullPath,
		Headers: merged.Headers,
		Query:   merged.Query,
		Body:    body,
		Timeout: merged.Timeout,
	})
	elapsed := time.Since(start)

	if err != nil {
		observability.SetSpanError(ctx, err)
		if s.metrics != nil {
			s.metrics.RecordEnd(ctx, s.name, method, "error", elapsed)
		}
		s.log.Warn("request failed", logger.Fields(
			logger.FieldMethod, method,
			logger.FieldPath, fullPath,
			logger.FieldError, err.Error(),
			logger.FieldDuration, elapsed.Milliseconds(),
		))
		return nil, 0, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrStatus, raw.StatusCode)
	observability.SetSpanAttribute(ctx, observability.AttrDurationMs, elapsed.Milliseconds())
	if s.metrics != nil {
		s.metrics.RecordEnd(ctx, s.name, method, strconv.Itoa(raw.StatusCode), elapsed)
	}
	s.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, method,
		logger.FieldPath, fullPath,
		logger.FieldStatus, raw.StatusCode,
		logger.FieldDuration, elapsed.Milliseconds(),
	))

	return raw, elapsed, nil
}

// resourcePath composes the base path with the call path. Paths that already
// start with the base path are used as-is, so models may pass either
// "/42" or "/widgets/42" for a service rooted at "/widgets".
func (s *Service) resourcePath(path string) string {
	if path == "" {
		return s.basePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == s.basePath || strings.HasPrefix(path, s.basePath+"/") || strings.HasPrefix(path, s.basePath+"?") {
		return path
	}
	return s.basePath + path
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
