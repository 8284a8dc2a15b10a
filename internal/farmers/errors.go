package farmers

import (
	"errors"
	"net/http"
)

// Domain errors for farmer operations.
var (
	ErrNotFound      = errors.New("farmer not found")
	ErrDuplicate     = errors.New("phone already registered")
	ErrInvalidFarmer = errors.New("farmer name is required")
)

// MapHTTPStatus maps farmer domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFarmer) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
