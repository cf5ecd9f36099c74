package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

func newAuthSvc(store *Store, sessions *stubSessionRepo) *AuthService {
	return NewAuthService(store, sessions, testHasher, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_UserGetsOwnClient(t *testing.T) {
	store := newTestStore(&stubDocumentRepo{})
	svc := newAuthSvc(store, newStubSessionRepo())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	doc := mustLoad(store)
	var owned []domain.Client
	for _, c := range doc.Clients {
		if c.UserID == user.ID {
			owned = append(owned, c)
		}
	}
	if len(owned) != 1 {
		t.Fatalf("expected exactly one client, got %d", len(owned))
	}
	if owned[0].Name != "Alice (Minha Conta)" || owned[0].Contact != "alice@example.com" {
		t.Fatalf("unexpected client: %+v", owned[0])
	}
}

func TestAuthService_Register_AdminGetsNoClient(t *testing.T) {
	store := newTestStore(&stubDocumentRepo{})
	svc := newAuthSvc(store, newStubSessionRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Root", Email: "root@example.com", Password: "pw", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if n := len(mustLoad(store).Clients); n != 0 {
		t.Fatalf("expected no clients, got %d", n)
	}
}

func TestAuthService_Register_DuplicateIgnoresCase(t *testing.T) {
	repo := &stubDocumentRepo{}
	store := newTestStore(repo)
	svc := newAuthSvc(store, newStubSessionRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Imposter", Email: "ADMIN@app.com", Password: "pw", Role: domain.RoleUser,
	})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	doc := mustLoad(store)
	if len(doc.Users) != 1 || len(doc.Clients) != 0 {
		t.Fatalf("failed registration must not write: %+v", doc)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newTestStore(&stubDocumentRepo{}), newStubSessionRepo())

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@b.c", Password: "pw"},
		{Name: "A", Email: "", Password: "pw"},
		{Name: "A", Email: "a@b.c", Password: ""},
		{Name: "A", Email: "a@b.c", Password: "pw", Role: "owner"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); err != domain.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_Login_SeededAdmin(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newAuthSvc(newTestStore(&stubDocumentRepo{}), sessions)

	sess, err := svc.Login(context.Background(), "Admin@App.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.User.ID != "admin_01" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}
	if _, ok := sessions.sessions[sess.ID]; !ok {
		t.Fatalf("expected session snapshot to be stored")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(sess.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sid"] != sess.ID || claims["sub"] != "admin_01" || claims["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_NotFoundAndWrongPasswordDiffer(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newAuthSvc(newTestStore(&stubDocumentRepo{}), sessions)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "admin123"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@app.com", "nope"); err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("failed logins must not create sessions, got %d", len(sessions.sessions))
	}
}

func TestAuthService_Login_RegisteredUser(t *testing.T) {
	svc := newAuthSvc(newTestStore(&stubDocumentRepo{}), newStubSessionRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	sess, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.User.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", sess.User.Role)
	}
}

func TestAuthService_LogoutClearsSession(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newAuthSvc(newTestStore(&stubDocumentRepo{}), sessions)

	sess, err := svc.Login(context.Background(), "admin@app.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), sess.ID); err != nil {
		t.Fatalf("CurrentUser before logout: %v", err)
	}
	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), sess.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_UpdateProfile_RefreshesSnapshot(t *testing.T) {
	store := newTestStore(&stubDocumentRepo{})
	sessions := newStubSessionRepo()
	svc := newAuthSvc(store, sessions)

	sess, err := svc.Login(context.Background(), "admin@app.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), sess.ID, ports.ProfileInput{Name: "Chief", Password: "newpass"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Chief" || !strings.HasPrefix(updated.Password, "$2") {
		t.Fatalf("unexpected user: %+v", updated)
	}
	if sessions.sessions[sess.ID].Name != "Chief" {
		t.Fatalf("session snapshot not refreshed")
	}

	if _, err := svc.Login(context.Background(), "admin@app.com", "admin123"); err != domain.ErrWrongPassword {
		t.Fatalf("old password should fail, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@app.com", "newpass"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAuthService_UpdateProfile_KeepsPasswordWhenEmpty(t *testing.T) {
	store := newTestStore(&stubDocumentRepo{})
	svc := newAuthSvc(store, newStubSessionRepo())

	sess, _ := svc.Login(context.Background(), "admin@app.com", "admin123")
	if _, err := svc.UpdateProfile(context.Background(), sess.ID, ports.ProfileInput{Name: "Renamed"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@app.com", "admin123"); err != nil {
		t.Fatalf("password should be unchanged: %v", err)
	}
}

func TestPasswordHasher_VerifiesLegacyDigest(t *testing.T) {
	if got := LegacyDigest("admin123"); len(got) != 16 {
		t.Fatalf("expected 16 char digest, got %q", got)
	}
	if !testHasher.Verify(LegacyDigest("admin123"), "admin123") {
		t.Fatalf("legacy digest should verify")
	}
	if testHasher.Verify(LegacyDigest("admin123"), "admin124") {
		t.Fatalf("wrong password verified against legacy digest")
	}
}

func TestPasswordHasher_LegacyDigestUsesLatin1(t *testing.T) {
	cases := map[string]string{
		"café123":  "Y2Fm6TEyM215X2Vu",
		"ação2024": "YefjbzIwMjRteV9l",
	}
	for password, digest := range cases {
		if got := LegacyDigest(password); got != digest {
			t.Fatalf("LegacyDigest(%q) = %q, want %q", password, got, digest)
		}
		if !testHasher.Verify(digest, password) {
			t.Fatalf("digest %q should verify %q", digest, password)
		}
	}
}

func TestPasswordHasher_LegacyDigestRejectsWideRunes(t *testing.T) {
	if got := LegacyDigest("senha€"); got != "" {
		t.Fatalf("expected no digest for characters above U+00FF, got %q", got)
	}
	if testHasher.Verify("", "senha€") {
		t.Fatalf("empty digest must not verify")
	}
}
