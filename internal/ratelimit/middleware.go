package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/ariya-events/ariya/internal/platform/httpx"
	"github.com/ariya-events/ariya/internal/shared"
)

// Limit returns a middleware enforcing the category's quota, keyed by the
// authenticated user when present and the client IP otherwise. Rate-limit
// headers are set on every response; rejections answer 429 with the
// category's configured message.
func Limit(store *Store, category Category) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := store.Check(identify(r), category)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				httpx.RespondError(nil, string(category), w, r, shared.RateLimited(res.Message, res.RetryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// identify derives the limiter key: user id for authenticated requests, the
// remote address otherwise. RealIP middleware runs earlier in the chain so
// RemoteAddr already reflects forwarding headers.
func identify(r *http.Request) string {
	if p := shared.PrincipalFromContext(r.Context()); p != nil {
		return "user:" + p.UserID
	}
	return "ip:" + r.RemoteAddr
}
