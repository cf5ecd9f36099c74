package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/api/middleware"
	"github.com/myenergy/tracker/internal/core/domain"
)

var (
	testAdmin = domain.User{ID: "admin_01", Name: "Super Admin", Email: "admin@app.com", Password: "digest", Role: domain.RoleAdmin}
	testUser  = domain.User{ID: "u_alice", Name: "Alice", Email: "alice@example.com", Password: "digest", Role: domain.RoleUser}
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newRequest builds a context for a JSON request, optionally authenticated as
// user with session id "sid_1".
func newRequest(e *echo.Echo, method, target string, body io.Reader, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.KeyUser, *user)
		c.Set(middleware.KeyRole, user.Role)
		c.Set(middleware.KeyUserID, user.ID)
		c.Set(middleware.KeySessionID, "sid_1")
	}
	return c, rec
}

// serve runs fn and renders a returned error the way the router would.
func serve(e *echo.Echo, c echo.Context, fn echo.HandlerFunc) {
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
