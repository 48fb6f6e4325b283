package ports

import (
	"context"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

// UserRepository defines the user lookups the login flow needs.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
