package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeyUser      = "user"
	KeyRole      = "role"
	KeyUserID    = "user_id"
	KeySessionID = "session_id"
)

// Auth validates the JWT, loads the session snapshot it references and
// injects the user into the context.
func Auth(jwtSecret string, sessions ports.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}

			user, err := sessions.Get(c.Request().Context(), sid)
			if errors.Is(err, domain.ErrSessionNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			if err != nil {
				return err
			}

			c.Set(KeyUser, *user)
			c.Set(KeyRole, user.Role)
			c.Set(KeyUserID, user.ID)
			c.Set(KeySessionID, sid)

			return next(c)
		}
	}
}
