package errs

import (
	"net/http"
)

const (
	// CodeValidationFailed marks a request body rejected by the validation layer.
	CodeValidationFailed = "VALIDATION_FAILED"

	// CodeAlreadySubscribed marks a duplicate subscription attempt.
	CodeAlreadySubscribed = "ALREADY_SUBSCRIBED"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 for a missing or invalid identity token.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 for a valid token lacking privilege.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// field-level failures; action is an optional client instruction.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404. The message names the missing resource and
// never includes store internals.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 for rate-limited callers.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a generic 500 without any detail.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewStoreError creates a 500 for a failed document or blob store call.
//
// message is the operation-level text shown to the client ("Failed to fetch
// blog posts"); the cause's text is exposed as Details.
func NewStoreError(message string, cause error) *HTTPError {
	e := &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: message,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewValidationError creates the 400 returned when one or more request
// fields fail their rules.
func NewValidationError(fieldErrors []FieldError) *HTTPError {
	code := CodeValidationFailed
	return NewBadRequestError("Validation failed", true, &code, fieldErrors, nil)
}

// NewAlreadyExistsError creates the 400 returned when a keyed document
// already exists (e.g. a duplicate subscription).
func NewAlreadyExistsError(message, code string) *HTTPError {
	return NewBadRequestError(message, true, &code, nil, nil)
}
