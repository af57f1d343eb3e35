package region

import (
	"context"
	"net/http"
)

type localeContextKey struct{}

// ContextWithLocale attaches the resolved locale to the request context.
func ContextWithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, localeContextKey{}, loc)
}

// LocaleFromContext returns the locale stamped by Middleware.
func LocaleFromContext(ctx context.Context) (Locale, bool) {
	loc, ok := ctx.Value(localeContextKey{}).(Locale)
	return loc, ok
}

// Middleware injects regional headers on every API response and makes the
// resolved locale available to handlers. The country is taken from edge
// headers when present, otherwise the configured fallback.
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := r.Header.Get("CF-IPCountry")
			if country == "" {
				country = r.Header.Get("X-Country-Code")
			}
			loc := resolver.Resolve(country)
			w.Header().Set("X-Country-Code", loc.CountryCode)
			w.Header().Set("X-Region", loc.Region)
			w.Header().Set("X-Currency-Code", loc.Currency)
			w.Header().Set("X-Timezone", loc.Timezone)
			next.ServeHTTP(w, r.WithContext(ContextWithLocale(r.Context(), loc)))
		})
	}
}
