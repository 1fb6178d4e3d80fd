package api

import (
	"errors"
	"net/http"

	service "github.com/okian/crosstune/internal/app"
	"github.com/okian/crosstune/internal/adapters/repository"
	"github.com/okian/crosstune/internal/domain/recommend"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// statusFor maps domain errors to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, recommend.ErrUnknownMovie), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, recommend.ErrInvalidSelection):
		return http.StatusUnprocessableEntity, "invalid_selection"
	case errors.Is(err, recommend.ErrInvalidK):
		return http.StatusUnprocessableEntity, "invalid_k"
	case errors.Is(err, repository.ErrInsufficientCatalog):
		return http.StatusUnprocessableEntity, "insufficient_catalog"
	case errors.Is(err, repository.ErrInvalidSampleSize):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
