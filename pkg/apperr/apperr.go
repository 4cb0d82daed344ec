package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an operator-visible failure with a fixed HTTP status and a
// human-readable message. Anything that is not an *Error is treated as an
// unexpected internal failure and masked in production.
type Error struct {
	Status     int
	Message    string
	RetryAfter int // seconds, only set for rate-limited failures
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s (%v)", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// RateLimited reports an OTP cooldown violation; waitSeconds is the whole
// number of seconds until a resend becomes eligible.
func RateLimited(waitSeconds int) *Error {
	return &Error{
		Status:     http.StatusTooManyRequests,
		Message:    fmt.Sprintf("Please wait %d seconds before requesting another OTP", waitSeconds),
		RetryAfter: waitSeconds,
	}
}

// Internal wraps an unexpected error so callers can still unwrap the cause.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}
