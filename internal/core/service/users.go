package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

// HashUserPassword is the BeforeSave hook of the users resource. A plain
// password in the payload is hashed and cleared; an update without one keeps
// the stored hash. An update without a role keeps the stored role.
func HashUserPassword(_ context.Context, incoming, existing *domain.User) error {
	switch {
	case incoming.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(incoming.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		incoming.PasswordHash = string(hash)
		incoming.Password = ""
	case existing != nil:
		incoming.PasswordHash = existing.PasswordHash
	default:
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	if incoming.Role == "" {
		incoming.Role = domain.RoleUser
		if existing != nil && existing.Role != "" {
			incoming.Role = existing.Role
		}
	}
	return nil
}
