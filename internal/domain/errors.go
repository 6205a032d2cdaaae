package domain

import (
	"errors"
	"net/http"
)

// AppError is the single failure value carried from the point of failure to the
// HTTP boundary. Only Status and Message are observable by clients.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// MakeError builds an AppError. A zero status is reported as 500 by StatusOf.
func MakeError(status int, msg string) error {
	return &AppError{Status: status, Message: msg}
}

func ErrAPIKeyRequired() error  { return MakeError(http.StatusBadRequest, "api key required") }
func ErrInvalidAPIKey() error   { return MakeError(http.StatusUnauthorized, "invalid api key") }
func ErrUndefinedQuery() error  { return MakeError(http.StatusBadRequest, "Undefined Query Parameters") }
func ErrInvalidURLParam() error { return MakeError(http.StatusBadRequest, "Invalid Url Parameter") }
func ErrInvalidBody() error     { return MakeError(http.StatusBadRequest, "invalid json body") }
func ErrBodyTooLarge() error    { return MakeError(http.StatusRequestEntityTooLarge, "request entity too large") }

// ErrAccountNotFound is what stores return when update/delete targets an Id
// that does not exist. It keeps the generic 500 status of store failures.
func ErrAccountNotFound() error {
	return MakeError(http.StatusInternalServerError, "user account not found")
}

// StatusOf returns the status attached to err, or 500.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// IsAccountNotFound reports whether err is a store miss on update/delete.
func IsAccountNotFound(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Message == "user account not found"
}
