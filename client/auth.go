package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

const (
	defaultAuthPath   = "/auth/login"
	defaultTokenField = "token"
	defaultAuthHeader = "Authorization"
	defaultAuthScheme = "Bearer"
)

// TokenHolder stores the authentication token for one service instance.
// It starts unset; Authenticate sets it and may be re-invoked to refresh.
// Tokens are never shared between instances unless deliberately passed.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// Set stores a token, replacing any previous one.
func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.set = true
}

// Get returns the stored token and whether one has been set.
func (h *TokenHolder) Get() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.set
}

// Clear removes the stored token.
func (h *TokenHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.set = false
}

// Authenticate posts credentials to the service's auth endpoint, extracts
// the configured token field from the response body, and stores it for all
// subsequent requests issued by this service instance. A non-success status
// fails with an authentication error; no retry is attempted. Re-invoking
// replaces the stored token.
//
// The auth path is resolved against the base URL directly, not the
// service's base path: the login endpoint belongs to the API, not the
// resource.
func (s *Service) Authenticate(ctx context.Context, credentials any) error {
	raw, _, err := s.dispatch(ctx, http.MethodPost, s.authPath, credentials, nil)
	if err != nil {
		return err
	}
	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		return NewAuthError(raw.StatusCode, raw.Body)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw.Body, &body); err != nil {
		return &Error{Kind: KindAuth, Message: fmt.Sprintf("decode auth response: %v", err), Err: err}
	}
	field, ok := body[s.tokenField]
	if !ok {
		return &Error{Kind: KindAuth, Message: fmt.Sprintf("auth response has no %q field", s.tokenField)}
	}
	var token string
	if err := json.Unmarshal(field, &token); err != nil {
		return &Error{Kind: KindAuth, Message: fmt.Sprintf("auth response field %q is not a string", s.tokenField), Err: err}
	}

	s.tokens.Set(token)
	s.log.Debug("authenticated")
	return nil
}

// WithToken returns a derived service that shares this service's transport
// and configuration but carries its own holder pre-set with token. Use it to
// inject a token explicitly instead of calling Authenticate.
func (s *Service) WithToken(token string) *Service {
	derived := *s
	derived.tokens = &TokenHolder{}
	derived.tokens.Set(token)
	return &derived
}

// Token returns the currently stored token, if any.
func (s *Service) Token() (string, bool) {
	return s.tokens.Get()
}

// formatToken renders the token for the configured header slot.
func (s *Service) formatToken(token string) string {
	if s.authScheme == "" {
		return token
	}
	return s.authScheme + " " + token
}
