package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// AuthService implements registration, login and session handling.
type AuthService struct {
	store     *Store
	sessions  ports.SessionRepository
	passwords PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(store *Store, sessions ports.SessionRepository, passwords PasswordHasher, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		store:     store,
		sessions:  sessions,
		passwords: passwords,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates the account and, for regular users, the client that
// holds their houses. Both are committed in one write.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if name == "" || email == "" || input.Password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:       newID(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}

	err = s.store.Update(ctx, func(doc *domain.Document) error {
		if _, exists := doc.UserByEmail(email); exists {
			return domain.ErrUserExists
		}
		doc.Users = append(doc.Users, user)
		if role == domain.RoleUser {
			doc.Clients = append(doc.Clients, domain.Client{
				ID:      newID(),
				UserID:  user.ID,
				Name:    name + domain.ClientAccountSuffix,
				Contact: email,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", role).Msg("user registered")
	return &user, nil
}

// Login checks the credentials, stores a session snapshot of the user and
// returns a token referencing it. An unknown email and a wrong password are
// reported separately.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := doc.UserByEmail(email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := doc.Users[i]
	if !s.passwords.Verify(user.Password, password) {
		s.logger.Warn().Str("user_id", user.ID).Msg("login with wrong password")
		return nil, domain.ErrWrongPassword
	}

	sid := newID()
	if err := s.sessions.Put(ctx, sid, user, s.tokenTTL); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateToken(user, sid, expiresAt)
	if err != nil {
		_ = s.sessions.Delete(ctx, sid)
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.Session{ID: sid, Token: token, User: user, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	return s.sessions.Get(ctx, sessionID)
}

// UpdateProfile renames the session's user and optionally sets a new
// password, then refreshes the session snapshot.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, input ports.ProfileInput) (*domain.User, error) {
	current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	var hash string
	if input.Password != "" {
		if hash, err = s.passwords.Hash(input.Password); err != nil {
			return nil, err
		}
	}

	var updated domain.User
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		i, ok := doc.UserByID(current.ID)
		if !ok {
			return domain.ErrUserNotFound
		}
		doc.Users[i].Name = name
		if hash != "" {
			doc.Users[i].Password = hash
		}
		updated = doc.Users[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, sessionID, updated, s.tokenTTL); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Bool("password_changed", hash != "").Msg("profile updated")
	return &updated, nil
}

func (s *AuthService) generateToken(user domain.User, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"sid":  sessionID,
		"role": user.Role,
		"exp":  expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
