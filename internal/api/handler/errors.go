package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/core/domain"
)

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrClientRequired),
		errors.Is(err, domain.ErrHouseRequired):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrInvalidReading),
		errors.Is(err, domain.ErrInvalidImport),
		errors.Is(err, domain.ErrCannotDeleteSelf):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrHouseNotFound),
		errors.Is(err, domain.ErrConsumptionNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, true
	}
	return 0, false
}

// httpError turns known domain errors into echo HTTP errors and passes
// anything else through to the central error handler.
func httpError(err error) error {
	if code, ok := StatusFor(err); ok {
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	}
	return err
}

func invalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
