package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"bookstore-catalog/pkg/database"
)

var (
	// ErrNotFound is returned by Update and Remove when no row has the given id.
	// Lookups report absence with a nil result instead.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity wraps the validation.Errors of a rejected write.
	ErrInvalidEntity = errors.New("invalid entity")
)

func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEntity):
		return "INVALID_ENTITY"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, database.ErrIntegrityViolation):
		return "INTEGRITY_VIOLATION"
	case errors.Is(err, database.ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrIntegrityViolation):
		return http.StatusConflict
	case errors.Is(err, database.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
