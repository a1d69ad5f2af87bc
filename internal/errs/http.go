// Package errs defines the error shape every API response uses on failure.
//
// Handlers, services and middleware return *HTTPError values; the global
// error handler serializes them as-is so clients always receive:
//
//	{ "code": "NOT_FOUND", "message": "Blog Post not found", "status": 404, ... }
//
// Field-level problems (validation) travel in Errors, store diagnostics in
// Details.
package errs

import "strings"

// FieldError is a single failing field of a request body.
//
//	{ "field": "email", "error": "Invalid email format" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType tells a client what to do next.
type ActionType string

const (
	// ActionTypeRedirect asks the client to navigate to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional follow-up instruction for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the API error type. It is serialized directly to JSON.
//
//   - Code: machine-friendly code (e.g. "VALIDATION_FAILED").
//   - Message: human-readable message.
//   - Status: HTTP status code.
//   - Override: whether the message is safe to show to end users verbatim.
//   - Details: diagnostic string for store failures (500s only).
//   - Errors: per-field validation failures.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Details  string       `json:"details,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Action   *Action      `json:"action,omitempty"`

	// cause is the underlying failure; it is logged, never serialized.
	cause error
}

// Error returns the human-readable message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *HTTPError. It does not compare fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a copy of e that remembers err as its cause.
func (e *HTTPError) WithCause(err error) *HTTPError {
	cp := *e
	cp.cause = err
	return &cp
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
