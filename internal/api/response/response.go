// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prasertk/stockd/internal/core"
)

// ErrorBody is the error response format: a single human-readable detail
// string, matching what the dashboard expects.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes a success response.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response with a detail string derived from the
// error's message and cause.
func Error(w http.ResponseWriter, status int, err error) {
	detail := "internal server error"

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail = coreErr.Message
		if coreErr.Cause != nil {
			detail += ": " + coreErr.Cause.Error()
		}
	} else if err != nil {
		detail = err.Error()
	}

	JSON(w, status, ErrorBody{Detail: detail})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUpstream):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
