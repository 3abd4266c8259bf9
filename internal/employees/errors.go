package employees

import (
	"errors"
	"net/http"
)

// Domain errors for registry operations.
var (
	ErrNotFound    = errors.New("employee not found")
	ErrDuplicate   = errors.New("employee already exists")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps registry errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
