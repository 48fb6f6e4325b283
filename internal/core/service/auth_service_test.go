package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrConflict
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

// stubThrottle blocks after max failures.
type stubThrottle struct {
	failures map[string]int
	max      int
	err      error
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Allow(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[username] < t.max, nil
}

func (t *stubThrottle) Fail(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubThrottle) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc := NewAuthService(repo, NewTokenService("secret", time.Hour), throttle, zerolog.Nop())
	return svc, repo, throttle
}

func mustRegister(t *testing.T, svc *AuthService, username, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), username, email, password)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected email to be stored, got %q", user.Email)
	}
	if user.Role != domain.RoleUser || !user.Active {
		t.Fatalf("unexpected role/active: %s %v", user.Role, user.Active)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "", "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	mustRegister(t, svc, "bob", "bob@example.com", "password1")
	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "password2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	identity, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if identity.ID != registered.ID || identity.Role != domain.RoleUser || identity.Username != "carol" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, throttle := newTestAuthService()

	mustRegister(t, svc, "dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["dave"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures["dave"])
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repo, _ := newTestAuthService()

	mustRegister(t, svc, "erin", "", "pass1234")
	repo.users["erin"].Active = false

	if _, _, err := svc.Login(context.Background(), "erin", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, _, throttle := newTestAuthService()

	mustRegister(t, svc, "frank", "", "goodpass")
	for i := 0; i < 3; i++ {
		_, _, _ = svc.Login(context.Background(), "frank", "bad")
	}

	if _, _, err := svc.Login(context.Background(), "frank", "goodpass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	delete(throttle.failures, "frank")
	if _, _, err := svc.Login(context.Background(), "frank", "goodpass"); err != nil {
		t.Fatalf("expected login after reset, got %v", err)
	}
}

func TestAuthService_Login_ThrottleError(t *testing.T) {
	svc, _, throttle := newTestAuthService()
	throttle.err = errors.New("redis down")

	if _, _, err := svc.Login(context.Background(), "gina", "pass"); err == nil || err.Error() != "redis down" {
		t.Fatalf("expected throttle error, got %v", err)
	}
}
