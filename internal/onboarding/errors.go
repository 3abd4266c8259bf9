package onboarding

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/roster/internal/employees"
)

// Pipeline errors.
var (
	ErrInvalidIdentity = errors.New("codename is empty after normalization")
	ErrUpload          = errors.New("artifact upload failed")
)

// MapHTTPStatus maps pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidIdentity), errors.Is(err, employees.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, employees.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
