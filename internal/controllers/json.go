package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/context"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends {"error": message}. Server-side failures are logged
// with the underlying error; client errors are not.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		context.ContextGetLogger(r.Context()).Error(message, zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a JSON request body of at most limit bytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) (int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return http.StatusRequestEntityTooLarge, "Request body is too large"
		case errors.Is(err, io.EOF):
			return http.StatusBadRequest, "Request body is empty"
		default:
			return http.StatusBadRequest, "Invalid JSON request body"
		}
	}
	return 0, ""
}
