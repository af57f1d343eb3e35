package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariya-events/ariya/internal/shared"
)

func TestLimitMiddlewareSetsHeadersAndRejects(t *testing.T) {
	s, _ := testStore(2, time.Minute)
	handler := Limit(s, CategoryAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var res *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		res = httptest.NewRecorder()
		handler.ServeHTTP(res, req)
	}

	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", res.Code)
	}
	if res.Header().Get("X-RateLimit-Limit") != "2" {
		t.Fatalf("limit header = %q", res.Header().Get("X-RateLimit-Limit"))
	}
	if res.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining header = %q", res.Header().Get("X-RateLimit-Remaining"))
	}
	if res.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing on rejection")
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Success {
		t.Fatal("rejection envelope must carry success=false")
	}
	if envelope.Message != "slow down" {
		t.Fatalf("message = %q, want category message", envelope.Message)
	}
}

func TestLimitMiddlewareKeysAuthenticatedCallersByUser(t *testing.T) {
	s, _ := testStore(1, time.Minute)
	handler := Limit(s, CategoryAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same user from two addresses shares one quota.
	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.RemoteAddr = addr
		ctx := shared.ContextWithPrincipal(req.Context(), &shared.Principal{UserID: "user-1"})
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req.WithContext(ctx))
		return res
	}

	if res := send("10.0.0.1:1234"); res.Code != http.StatusOK {
		t.Fatalf("first request rejected: %d", res.Code)
	}
	if res := send("10.0.0.2:1234"); res.Code != http.StatusTooManyRequests {
		t.Fatalf("same user from another address must share the quota, got %d", res.Code)
	}
}

func TestLimitMiddlewareKeysDistinctClients(t *testing.T) {
	s, _ := testStore(1, time.Minute)
	handler := Limit(s, CategoryAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, first)

	second := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, second)

	if res1.Code != http.StatusOK || res2.Code != http.StatusOK {
		t.Fatalf("distinct clients should both be admitted, got %d and %d", res1.Code, res2.Code)
	}
}
