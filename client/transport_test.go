package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTransport_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/widgets/42" {
			t.Errorf("expected /widgets/42, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"name": "sprocket"})
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/widgets/42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.StatusCode != 200 {
		t.Errorf("expected 200, got %d", raw.StatusCode)
	}
	if !strings.Contains(string(raw.Body), "sprocket") {
		t.Errorf("body should contain sprocket, got %s", string(raw.Body))
	}
	if ct := raw.Headers.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type header preserved, got %q", ct)
	}
}

func TestTransport_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(201)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := tr.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/widgets",
		Body:   map[string]string{"name": "gadget"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.StatusCode != 201 {
		t.Errorf("expected 201, got %d", raw.StatusCode)
	}
}

func TestTransport_Do_DefaultHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("expected X-Custom=value, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Custom": "value"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransport_Do_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/widgets",
		Query:  map[string]string{"page": "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransport_Do_RequestIDAndUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(RequestIDHeader); got == "" {
			t.Error("expected generated request ID")
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "apikit/") {
			t.Errorf("expected apikit user agent, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransport_Do_CallerRequestIDWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(RequestIDHeader); got != "fixed-id" {
			t.Errorf("expected fixed-id, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Headers: map[string]string{RequestIDHeader: "fixed-id"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransport_Do_NonSuccessStatusResolves(t *testing.T) {
	for _, code := range []int{400, 401, 404, 409, 500, 503} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte(`{"error":"boom"}`))
		}))

		tr, err := NewTransport(Config{BaseURL: srv.URL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		raw, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
		if err != nil {
			t.Errorf("HTTP %d must resolve, got error: %v", code, err)
		}
		if raw == nil || raw.StatusCode != code {
			t.Errorf("expected status %d, got %+v", code, raw)
		}
		srv.Close()
	}
}

func TestTransport_Do_UnreachableHost(t *testing.T) {
	tr, err := NewTransport(Config{BaseURL: "http://127.0.0.1:1", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatalf("expected connection error, got response %+v", raw)
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestTransport_Do_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = tr.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestTransport_Do_PerRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL, Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Timeout: 50 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestTransport_Do_PerRequestTimeoutExtendsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL, Timeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := tr.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("per-request timeout must override a shorter default, got %v", err)
	}
	if raw.StatusCode != 200 {
		t.Errorf("expected 200, got %d", raw.StatusCode)
	}
}

func TestTransport_Do_DefaultTimeoutIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("default-timeout expiry must classify as timeout, got %v", err)
	}
}

func TestTransport_Do_FullURLIgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewTransport(Config{BaseURL: "http://should-not-be-used.invalid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := tr.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   srv.URL + "/direct",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.StatusCode != 200 {
		t.Errorf("expected 200, got %d", raw.StatusCode)
	}
}
