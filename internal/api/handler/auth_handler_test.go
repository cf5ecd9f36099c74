package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
	logoutFn   func(ctx context.Context, sessionID string) error
	profileFn  func(ctx context.Context, sessionID string, input ports.ProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, sessionID string, input ports.ProfileInput) (*domain.User, error) {
	return s.profileFn(ctx, sessionID, input)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "user" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Password: "$2a$digest", Role: in.Role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"secret","role":"user"}`)
	c, rec := newRequest(e, http.MethodPost, "/v1/auth/register", body, nil)
	serve(e, c, handler.Register)

	expectStatus(t, rec, http.StatusCreated)
	if strings.Contains(rec.Body.String(), "digest") {
		t.Fatalf("response leaked the password digest: %s", rec.Body.String())
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u1" || resp.Capabilities.CanManageUsers {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Bob","email":"bob@example.com","password":"secret"}`)
	c, rec := newRequest(e, http.MethodPost, "/v1/auth/register", body, nil)
	serve(e, c, handler.Register)

	expectStatus(t, rec, http.StatusConflict)
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{
		"not-json",
		`{"name":"Bob","email":"not-an-email","password":"secret"}`,
		`{"name":"Bob","email":"bob@example.com","password":"secret","role":"root"}`,
	} {
		c, rec := newRequest(e, http.MethodPost, "/v1/auth/register", strings.NewReader(body), nil)
		serve(e, c, handler.Register)
		expectStatus(t, rec, http.StatusBadRequest)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
			if email != "admin@app.com" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.Session{ID: "sid", Token: "token123", User: testAdmin, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(e, http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"admin@app.com","password":"admin123"}`), nil)
	serve(e, c, handler.Login)

	expectStatus(t, rec, http.StatusOK)
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.User.Role != domain.RoleAdmin || !resp.Capabilities.CanDeleteRecords {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_DistinctFailures(t *testing.T) {
	cases := map[error]int{
		domain.ErrUserNotFound:  http.StatusNotFound,
		domain.ErrWrongPassword: http.StatusUnauthorized,
	}
	for failure, code := range cases {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
				return nil, failure
			},
		}
		handler := NewAuthHandler(stub)

		c, rec := newRequest(e, http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`), nil)
		serve(e, c, handler.Login)

		expectStatus(t, rec, code)
		if !strings.Contains(rec.Body.String(), failure.Error()) {
			t.Fatalf("expected message %q, got %s", failure, rec.Body.String())
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(e, http.MethodPost, "/v1/auth/login", strings.NewReader("{"), nil)
	serve(e, c, handler.Login)

	expectStatus(t, rec, http.StatusBadRequest)
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	var dropped string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			dropped = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(e, http.MethodPost, "/v1/auth/logout", nil, &testUser)
	serve(e, c, handler.Logout)

	expectStatus(t, rec, http.StatusNoContent)
	if dropped != "sid_1" {
		t.Fatalf("expected session sid_1 dropped, got %q", dropped)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newRequest(e, http.MethodGet, "/v1/me", nil, &testUser)
	serve(e, c, handler.Me)
	expectStatus(t, rec, http.StatusOK)

	var resp meResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.User.Name != "Alice" || resp.Capabilities.CanDeleteRecords {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, rec = newRequest(e, http.MethodGet, "/v1/me", nil, nil)
	serve(e, c, handler.Me)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, sessionID string, in ports.ProfileInput) (*domain.User, error) {
			if sessionID != "sid_1" || in.Name != "Alice B" || in.Password != "" {
				t.Fatalf("unexpected args: %s %+v", sessionID, in)
			}
			u := testUser
			u.Name = in.Name
			return &u, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(e, http.MethodPut, "/v1/me", strings.NewReader(`{"name":"Alice B"}`), &testUser)
	serve(e, c, handler.UpdateMe)

	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"Alice B"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
