// Package httpx shapes every endpoint outcome into the uniform Ariya API
// envelope.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariya-events/ariya/internal/shared"
)

// Envelope is the single wire-level response shape. Exactly one of the
// success/error forms leaves the system boundary for every request.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ListPayload pairs page data with pagination metadata.
type ListPayload struct {
	Items      any               `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// ErrMalformedJSON marks an unparseable request body. It is a transport
// failure, not a validation-rule failure.
var ErrMalformedJSON = errors.New("malformed json body")

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success writes a success envelope. Status defaults to 200 when zero.
func Success(w http.ResponseWriter, status int, message string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	Success(w, http.StatusCreated, message, data)
}

// NoContent answers 204 without a body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated writes a success envelope wrapping items plus pagination metadata.
func Paginated(w http.ResponseWriter, message string, items any, p shared.Pagination) {
	Success(w, http.StatusOK, message, ListPayload{Items: items, Pagination: p})
}

// Error writes an error envelope with optional structured detail.
func Error(w http.ResponseWriter, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	JSON(w, status, Envelope{Success: false, Message: message, Errors: details})
}

// DecodeJSON decodes the request body into target. Any decode failure is
// reported as ErrMalformedJSON so callers answer 400 without consulting the
// validator.
func DecodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return ErrMalformedJSON
	}
	return nil
}
