package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariya-events/ariya/internal/shared"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{shared.Validation("Validation failed", nil), http.StatusBadRequest},
		{shared.Unauthenticated("Authentication required"), http.StatusUnauthorized},
		{shared.Forbidden("Access denied: Insufficient permissions"), http.StatusForbidden},
		{shared.NotFound("Event not found"), http.StatusNotFound},
		{shared.Conflict("A user with this email already exists"), http.StatusConflict},
		{shared.RateLimited("slow down", time.Minute), http.StatusTooManyRequests},
		{errors.New("nil pointer dereference"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		res := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		RespondError(nil, "test", res, req, c.err)
		if res.Code != c.status {
			t.Fatalf("%v: status = %d, want %d", c.err, res.Code, c.status)
		}
	}
}

func TestRespondErrorMalformedJSON(t *testing.T) {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	RespondError(nil, "test", res, req, ErrMalformedJSON)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
	body := decodeEnvelope(t, res)
	if body["message"] != "Invalid JSON in request body" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RespondError(logger, "events.list", res, req, errors.New("pq: connection refused"))

	body := decodeEnvelope(t, res)
	if body["message"] != "Internal server error" {
		t.Fatalf("client message = %v, must stay generic", body["message"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("connection refused")) {
		t.Fatal("cause missing from server log")
	}
	if !bytes.Contains(buf.Bytes(), []byte("events.list")) {
		t.Fatal("route missing from server log")
	}
}

func TestRespondErrorRetryAfterHeader(t *testing.T) {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	RespondError(nil, "auth", res, req, shared.RateLimited("slow down", 90*time.Second))
	if got := res.Header().Get("Retry-After"); got != "90" {
		t.Fatalf("Retry-After = %q, want 90", got)
	}

	res = httptest.NewRecorder()
	RespondError(nil, "auth", res, req, shared.RateLimited("slow down", 200*time.Millisecond))
	if got := res.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("sub-second Retry-After = %q, want floor of 1", got)
	}
}

func TestRespondErrorFieldDetails(t *testing.T) {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	RespondError(nil, "auth.register", res, req, shared.Validation("Validation failed", map[string]string{
		"email": "Email must be a valid email address",
	}))

	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Errors["email"] != "Email must be a valid email address" {
		t.Fatalf("errors = %v", envelope.Errors)
	}
}
