package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ariya-events/ariya/internal/shared"
)

// statusFor maps the closed error set to HTTP statuses.
func statusFor(kind shared.Kind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindUnauthenticated:
		return http.StatusUnauthorized
	case shared.KindForbidden:
		return http.StatusForbidden
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindConflict:
		return http.StatusConflict
	case shared.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps err to the envelope for its kind. Unclassified failures
// answer a generic 500 while the original error is logged with the route
// context and request id, never leaked to the client.
func RespondError(logger *slog.Logger, route string, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrMalformedJSON) {
		Error(w, http.StatusBadRequest, "Invalid JSON in request body", nil)
		return
	}

	var tagged *shared.Error
	if !errors.As(err, &tagged) {
		tagged = shared.Internal(err)
	}

	status := statusFor(tagged.Kind)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("unhandled error",
			slog.String("route", route),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
	}

	if tagged.Kind == shared.KindRateLimited && tagged.RetryAfter > 0 {
		secs := int(tagged.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	var details any
	if len(tagged.Fields) > 0 {
		details = tagged.Fields
	}
	Error(w, status, tagged.Message, details)
}
