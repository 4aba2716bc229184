package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/service"
)

// toHTTPError maps service errors onto HTTP status codes. Validation and
// authorization failures are 4xx and never retried; DependencyUnavailable is
// the only 5xx-equivalent and signals the caller may retry with backoff.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrSitterNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDates),
		errors.Is(err, service.ErrInvalidPet),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrServiceUnavailable),
		errors.Is(err, service.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrSitterNotApproved):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyRefunded):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrDependencyUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
