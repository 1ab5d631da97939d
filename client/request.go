package client

import "time"

// Request describes an outbound HTTP request at the transport level.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS).
	Method string
	// Path is appended to the transport's BaseURL. Can be a full URL if
	// the transport has no BaseURL.
	Path string
	// Headers are request-specific headers (merged over transport defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded.
	Body any
	// Timeout overrides the transport timeout for this request.
	Timeout time.Duration
}

// RequestConfig carries per-call overrides for headers, query parameters,
// and timeout. When supplied on a call it is merged with the service
// defaults; call-specific values win on key collision and unspecified keys
// fall back to the defaults.
type RequestConfig struct {
	// Headers are merged over the service's default headers.
	Headers map[string]string
	// Query parameters are merged over the service's default parameters.
	Query map[string]string
	// Timeout overrides the service timeout when positive.
	Timeout time.Duration
}

// Merge returns a new RequestConfig combining c (defaults) with override.
// Keys present in override win; keys only in c are preserved. Neither input
// is mutated.
func (c RequestConfig) Merge(override *RequestConfig) RequestConfig {
	merged := RequestConfig{
		Headers: cloneMap(c.Headers),
		Query:   cloneMap(c.Query),
		Timeout: c.Timeout,
	}
	if override == nil {
		return merged
	}
	for k, v := range override.Headers {
		if merged.Headers == nil {
			merged.Headers = make(map[string]string, len(override.Headers))
		}
		merged.Headers[k] = v
	}
	for k, v := range override.Query {
		if merged.Query == nil {
			merged.Query = make(map[string]string, len(override.Query))
		}
		merged.Query[k] = v
	}
	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}
	return merged
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
