package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
)

const notFoundMessage = "Sorry, can't find that"

// ErrorBody is the only error shape clients ever see: {"error":"..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as the response body with Content-Type.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// Err maps err to a status and {"error": message}. Errors without an attached
// status are 500 and their details stay in the logs.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		Fail(w, http.StatusInternalServerError, "unknown error")
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, domain.StatusOf(ae), ae.Message)
		return
	}

	// keep details in logs only
	logger.WithCtx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("unhandled error")
	Fail(w, http.StatusInternalServerError, "internal error")
}

// NotFound is the fallback for any method/path no route claimed.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, http.StatusNotFound, notFoundMessage)
}
