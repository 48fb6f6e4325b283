package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenderdesk/business-api/internal/core/domain"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, log: log}
}

// Register creates a regular, active user. Elevated roles are granted through
// the users resource by an admin.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	user := &domain.User{
		Meta: domain.Meta{
			ID:        id,
			CreatedBy: id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login checks the password and returns a signed token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allow(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if !allowed {
		s.log.Warn().Str("username", username).Msg("login throttled")
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, err
	}

	if user == nil || !user.Active ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if ferr := s.throttle.Fail(ctx, username); ferr != nil {
			s.log.Error().Err(ferr).Str("username", username).Msg("record failed login")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("reset login throttle")
	}

	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Role: user.Role, Username: user.Username})
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
