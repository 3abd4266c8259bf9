// Package handlers provides JSON request decoding and response helpers
// shared by the HTTP handlers of every domain package.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrBodyTooLarge indicates the request body exceeded the configured limit.
var ErrBodyTooLarge = errors.New("request body too large")

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as a {"message": ...} JSON response.
// Server-side failures are logged at error level, client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, ErrorBody{Message: err.Error()})
}

// DecodeJSON decodes a JSON request body of at most maxBytes into T.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, maxBytes int64) (T, error) {
	var v T
	body := http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return v, ErrBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("empty request body")
		}
		return v, fmt.Errorf("decode request body: %w", err)
	}

	return v, nil
}
