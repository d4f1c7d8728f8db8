package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound marks a resource as absent.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// InvalidRequest marks a precondition violated by caller-supplied state.
func InvalidRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Internal marks a persistence or infrastructure failure.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Signing marks a token issuance failure.
func Signing(err error) *Error {
	return New(http.StatusInternalServerError, "Failed to sign token", err)
}

// IsNotFound reports whether err is a NotFound application error.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == http.StatusNotFound
}

// IsInvalidRequest reports whether err is an InvalidRequest application error.
func IsInvalidRequest(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == http.StatusBadRequest
}

var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)
