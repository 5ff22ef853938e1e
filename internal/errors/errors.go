// Package errors provides the error types used by the Spendo client.
// Every failure surfaced to callers is an *AppError so that the four
// failure classes (transport, HTTP status, decode, domain not-found)
// stay distinguishable with errors.Is/errors.As.
package errors

import "fmt"

// AppError is a structured client error. StatusCode and Body are only
// populated for HTTP-status failures; Internal carries the underlying
// cause for logging and unwrapping.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Body       []byte
	Internal   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is a sentinel with the same code, so that
// errors.Is(err, ErrNotFound) works on wrapped copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a copy of sentinel carrying an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Transport-level failures: the request never completed an HTTP exchange.
var (
	ErrTransport  = &AppError{Code: "TRANSPORT_ERROR", Message: "Request could not be completed"}
	ErrInvalidURL = &AppError{Code: "INVALID_URL", Message: "Malformed request URL"}
)

// Protocol-level failures.
var (
	ErrHTTPStatus = &AppError{Code: "HTTP_ERROR", Message: "Server returned a non-success status"}
	ErrDecode     = &AppError{Code: "DECODE_ERROR", Message: "Response body did not match the expected shape"}
)

// Domain outcomes.
var (
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "No budget for this category"}
	ErrNoToken        = &AppError{Code: "NO_TOKEN", Message: "No stored auth token"}
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
)

// HTTPStatus builds an HTTP_ERROR carrying the response status and raw
// body for diagnostics. The body is for logging only, never for display.
func HTTPStatus(status int, body []byte) *AppError {
	return &AppError{
		Code:       ErrHTTPStatus.Code,
		Message:    fmt.Sprintf("Server returned status %d", status),
		StatusCode: status,
		Body:       body,
	}
}
