package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariya-events/ariya/internal/shared"
)

func TestVersionRewrite(t *testing.T) {
	var seen string
	handler := versionRewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	}))

	cases := []struct {
		in   string
		want string
	}{
		{"/api/events", "/api/v1/events"},
		{"/api/events/abc-123", "/api/v1/events/abc-123"},
		{"/api/v1/events", "/api/v1/events"},
		{"/api/auth/login", "/api/auth/login"},
		{"/healthz", "/healthz"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.in, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if seen != c.want {
			t.Fatalf("rewrite(%q) = %q, want %q", c.in, seen, c.want)
		}
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := cors([]string{"https://app.ariya.events"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://app.ariya.events")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get("Access-Control-Allow-Origin"); got != "https://app.ariya.events" {
		t.Fatalf("allow-origin = %q", got)
	}
	if res.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("credentials header missing")
	}
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	handler := cors([]string{"https://app.ariya.events"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unknown origin must not be echoed")
	}
	if res.Code != http.StatusOK {
		t.Fatalf("request itself still passes through, got %d", res.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := cors([]string{"https://app.ariya.events"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://app.ariya.events")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", res.Code)
	}
	if res.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("allow-methods header missing")
	}
}

func TestRequestLoggerEmitsCompletionLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"request completed", `"status":418`, `"method":"GET"`, `"path":"/api/v1/events"`} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("log line %q missing %q", out, want)
		}
	}
	if bytes.Contains([]byte(out), []byte("user_id")) {
		t.Fatalf("unauthenticated log line %q must not carry user_id", out)
	}
}

func TestRequestLoggerCarriesUserID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// The inner handler attaches the principal on a derived context, the way
	// the auth resolver does for its downstream handlers.
	handler := requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.ContextWithPrincipal(r.Context(), &shared.Principal{UserID: "user-123"})
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).ServeHTTP(w, r.WithContext(ctx))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !bytes.Contains(buf.Bytes(), []byte(`"user_id":"user-123"`)) {
		t.Fatalf("log line %q missing user_id", buf.String())
	}
}
