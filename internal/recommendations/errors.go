package recommendations

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownDisease    = errors.New("unknown disease label")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")
	ErrInvalidCatalog    = errors.New("invalid treatment catalog")
)

// MapHTTPStatus maps recommendation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownDisease):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidConfidence):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
