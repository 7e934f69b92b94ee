package utils

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// ApiResponse is the uniform success envelope. Success is derived
// from the status code, never set independently.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// NewApiResponse builds a success envelope for the given status code.
func NewApiResponse(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode >= 200 && statusCode < 300,
	}
}

// Respond serializes a success envelope onto the response.
func Respond(c echo.Context, statusCode int, data interface{}, message string) error {
	return c.JSON(statusCode, NewApiResponse(statusCode, data, message))
}

// ApiError is the typed error carried through the request lifecycle.
// Message and Errors are client-safe; the stack is captured for the
// logging channel and is never marshaled into the response body.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`

	stack string
	cause error
}

// NewApiError captures the call stack at construction so the reporter
// can log where the failure originated.
func NewApiError(statusCode int, message string, errs ...string) *ApiError {
	if errs == nil {
		errs = []string{}
	}
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
		Success:    false,
		stack:      string(debug.Stack()),
	}
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Stack returns the captured call stack for logging.
func (e *ApiError) Stack() string { return e.stack }

// WithCause attaches the underlying error for the logging channel.
// The cause never reaches the client body.
func (e *ApiError) WithCause(err error) *ApiError {
	e.cause = err
	return e
}

// Cause returns the underlying error, if any.
func (e *ApiError) Cause() error { return e.cause }

// Unwrap lets errors.Is/As see through to the underlying cause.
func (e *ApiError) Unwrap() error { return e.cause }

// Convenience constructors for the error taxonomy.

func ErrValidation(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func ErrConflict(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func ErrNotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func ErrUnauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

func ErrInternal(message string) *ApiError {
	return NewApiError(http.StatusInternalServerError, message)
}
