package shared

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure into the closed set the HTTP layer knows how to
// answer. Handlers switch on Kind, never on message text.
type Kind int

const (
	// KindInternal is the fallback for anything unclassified.
	KindInternal Kind = iota
	// KindValidation indicates a missing or malformed input field.
	KindValidation
	// KindUnauthenticated indicates a missing, invalid or expired credential.
	KindUnauthenticated
	// KindForbidden indicates an authenticated caller lacking role or ownership.
	KindForbidden
	// KindNotFound indicates an absent resource, or one the caller cannot see.
	KindNotFound
	// KindConflict indicates a duplicate resource, e.g. an existing email.
	KindConflict
	// KindRateLimited indicates the caller exceeded a rate-limit quota.
	KindRateLimited
)

// Error is the tagged error carried between services, handlers and the
// response formatter.
type Error struct {
	Kind       Kind
	Message    string
	Fields     map[string]string
	RetryAfter time.Duration
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the originating error without changing the client-facing
// message.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Validation builds a field-level validation failure.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unauthenticated builds a 401-class failure.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden builds a 403-class failure.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound builds a 404-class failure.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a 409-class failure.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// RateLimited builds a 429-class failure with a retry-after hint.
func RateLimited(message string, retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, Message: message, RetryAfter: retryAfter}
}

// Internal wraps an unclassified failure. The message shown to clients is
// generic; the cause stays server-side.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", cause: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
