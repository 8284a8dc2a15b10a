package analyses

import (
	"errors"
	"net/http"
)

// Domain errors for analysis operations.
var (
	ErrNotFound      = errors.New("analysis not found")
	ErrDuplicate     = errors.New("analysis already exists")
	ErrTreeNotFound  = errors.New("tree not found")
	ErrInvalidFrames = errors.New("invalid frame record")
	ErrTooManyFrames = errors.New("too many frames")
	ErrInvalidBatch  = errors.New("batch must contain at least one item")
	ErrBatchTooLarge = errors.New("batch too large")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTreeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidFrames), errors.Is(err, ErrInvalidBatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyFrames), errors.Is(err, ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
