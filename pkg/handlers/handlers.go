// Package handlers provides shared HTTP response helpers.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// ErrInvalidBody indicates a request body could not be decoded.
var ErrInvalidBody = errors.New("invalid request body")

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as a JSON {"error": "..."} response.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// DecodeJSON decodes a request body into T, reading at most limit bytes.
// A non-positive limit disables the cap. Unknown fields are permitted.
func DecodeJSON[T any](r *http.Request, limit int64) (T, error) {
	var v T

	var body io.Reader = r.Body
	if limit > 0 {
		body = io.LimitReader(r.Body, limit)
	}

	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return v, errors.Join(ErrInvalidBody, err)
	}
	return v, nil
}
