package events

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ariya-events/ariya/internal/region"
	"github.com/ariya-events/ariya/internal/shared"
)

func testEventsRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(newMemRepo()))

	router := chi.NewRouter()
	router.Use(region.Middleware(region.NewResolver("US")))
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.ContextWithPrincipal(r.Context(), &shared.Principal{UserID: "planner-1", Role: "PLANNER"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.Route("/events", handler.MountRoutes)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, body, country string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if country != "" {
		req.Header.Set("CF-IPCountry", country)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	return res, envelope
}

const createBody = `{"title":"Garden Wedding","eventType":"WEDDING","location":"Accra",` +
	`"guestCount":120,"budgetCents":500000,"startsAt":"2026-11-01T10:00:00Z"}`

func TestCreateRendersBudgetInDefaultLocale(t *testing.T) {
	router := testEventsRouter(t)

	res, envelope := doJSON(t, router, http.MethodPost, "/events", createBody, "")
	require.Equal(t, http.StatusCreated, res.Code)

	data := envelope["data"].(map[string]any)
	require.Equal(t, "USD", data["currency"])
	display := data["budgetDisplay"].(string)
	require.Contains(t, display, "5,000.00")
}

func TestGetConvertsBudgetToCallerCurrency(t *testing.T) {
	router := testEventsRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/events", createBody, "")
	id := created["data"].(map[string]any)["id"].(string)

	res, envelope := doJSON(t, router, http.MethodGet, "/events/"+id, "", "GB")
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "GBP", res.Header().Get("X-Currency-Code"))

	// 5000 USD at the 0.79 GBP rate.
	display := envelope["data"].(map[string]any)["budgetDisplay"].(string)
	require.Contains(t, display, "3,950.00")
}

func TestListRendersBudgetPerItem(t *testing.T) {
	router := testEventsRouter(t)

	_, _ = doJSON(t, router, http.MethodPost, "/events", createBody, "")

	res, envelope := doJSON(t, router, http.MethodGet, "/events", "", "")
	require.Equal(t, http.StatusOK, res.Code)

	items := envelope["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	require.Contains(t, items[0].(map[string]any)["budgetDisplay"], "5,000.00")
}

func TestZeroBudgetOmitsDisplay(t *testing.T) {
	router := testEventsRouter(t)

	body := `{"title":"Board Offsite","eventType":"CORPORATE","location":"Lagos",` +
		`"startsAt":"2026-11-01T10:00:00Z"}`
	res, envelope := doJSON(t, router, http.MethodPost, "/events", body, "")
	require.Equal(t, http.StatusCreated, res.Code)
	require.NotContains(t, envelope["data"].(map[string]any), "budgetDisplay")
}
