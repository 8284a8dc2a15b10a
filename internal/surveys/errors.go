package surveys

import (
	"errors"
	"net/http"
)

// Domain errors for survey operations.
var (
	ErrNotFound       = errors.New("survey not found")
	ErrDuplicate      = errors.New("survey already exists")
	ErrFarmerNotFound = errors.New("farmer not found")
	ErrForbidden      = errors.New("survey does not belong to farmer")
	ErrInvalidSurvey  = errors.New("invalid survey")
	ErrNoTopView      = errors.New("survey has no top-view image")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
	ErrInvalidFile    = errors.New("invalid file")
)

// MapHTTPStatus maps survey domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrFarmerNotFound),
		errors.Is(err, ErrNoTopView):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidSurvey), errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
