package storage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates the storage key contains a path traversal segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrUnavailable indicates the container is missing or the service is
	// throttling or timing out.
	ErrUnavailable = errors.New("storage unavailable")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// translate folds Azure error codes into the package sentinels, keeping the
// service error in the chain for logging.
func translate(err error, op, key string) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	case bloberror.HasCode(err,
		bloberror.ContainerNotFound,
		bloberror.ContainerBeingDeleted,
		bloberror.ServerBusy,
		bloberror.OperationTimedOut,
	):
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, key, err)
	default:
		return fmt.Errorf("%s %s: %w", op, key, err)
	}
}
