package shared

import "context"

// Principal describes the resolved identity of an authenticated request.
type Principal struct {
	UserID        string
	SessionID     string
	Email         string
	Role          string
	EmailVerified bool
}

type principalContextKey struct{}

// principalHolder is a mutable slot seeded before routing so middleware that
// runs earlier in the chain (the request logger) can observe a principal
// attached later by the auth resolver, the same way a wrapped response
// writer carries the status code back up.
type principalHolder struct {
	p *Principal
}

// WithPrincipalHolder seeds an empty principal slot into the context.
func WithPrincipalHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalContextKey{}, &principalHolder{})
}

// ContextWithPrincipal records the resolved principal. When a holder was
// seeded upstream it is filled in place; otherwise a new one is attached.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	if h, ok := ctx.Value(principalContextKey{}).(*principalHolder); ok {
		h.p = p
		return ctx
	}
	return context.WithValue(ctx, principalContextKey{}, &principalHolder{p: p})
}

// PrincipalFromContext extracts the principal from context, nil when the
// request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	if h, ok := ctx.Value(principalContextKey{}).(*principalHolder); ok {
		return h.p
	}
	return nil
}
