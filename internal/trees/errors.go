package trees

import (
	"errors"
	"net/http"
)

// Domain errors for tree operations.
var (
	ErrNotFound          = errors.New("tree not found")
	ErrDuplicate         = errors.New("tree number already used in survey")
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrForbidden         = errors.New("tree does not belong to farmer")
	ErrInvalidTree       = errors.New("survey_id and a positive tree_number are required")
	ErrInvalidPart       = errors.New("part must be stem, leaves, or bud")
	ErrInvalidStatus     = errors.New("unsupported part status")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)

// MapHTTPStatus maps tree domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSurveyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidTree),
		errors.Is(err, ErrInvalidPart),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidConfidence):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
