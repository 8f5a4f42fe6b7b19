// Package apperr defines the application error taxonomy and translates
// errors into the uniform JSON shape returned at the HTTP boundary.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is an application error with an HTTP status and a message safe to
// return to clients. The wrapped cause is for logs only and is never
// serialized.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports malformed input.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Auth reports missing or invalid credentials.
func Auth(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// NotFound reports an absent resource. Callers deliberately cannot tell
// "does not exist" from "not owned by you".
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Unavailable reports a downstream service failure. The cause is kept for
// logging but hidden from the response.
func Unavailable(msg string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// Internal wraps an unexpected error behind an opaque message.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", cause: cause}
}

// FromError returns err as an *Error, falling back to an opaque 500.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsNotFound reports whether err is a not-found application error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Status == http.StatusNotFound
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the uniform error body. Stack traces and
// wrapped causes never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)
	WriteJSON(w, appErr.Status, map[string]string{
		"status":  "error",
		"message": appErr.Message,
	})
}
