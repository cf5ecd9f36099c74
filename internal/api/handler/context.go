package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/api/middleware"
	"github.com/myenergy/tracker/internal/core/domain"
)

// ctxUser returns the session user injected by the Auth middleware. A missing
// user means the route was mounted without Auth.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := c.Get(middleware.KeyUser).(domain.User)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

func ctxSessionID(c echo.Context) (string, error) {
	sid, _ := c.Get(middleware.KeySessionID).(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, nil
}
