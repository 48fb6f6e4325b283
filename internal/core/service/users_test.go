package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

func TestHashUserPassword(t *testing.T) {
	ctx := context.Background()

	in := &domain.User{Username: "alice", Password: "longenough"}
	require.NoError(t, HashUserPassword(ctx, in, nil))
	assert.Empty(t, in.Password)
	assert.Equal(t, domain.RoleUser, in.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(in.PasswordHash), []byte("longenough")))

	update := &domain.User{Username: "alice", Role: domain.RoleAdmin}
	require.NoError(t, HashUserPassword(ctx, update, in))
	assert.Equal(t, in.PasswordHash, update.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, update.Role)

	err := HashUserPassword(ctx, &domain.User{Username: "bob"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHashUserPassword_UpdateKeepsStoredRole(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{Username: "root", Role: domain.RoleAdmin, PasswordHash: "hash"}

	update := &domain.User{Username: "root", Email: "root@example.com"}
	require.NoError(t, HashUserPassword(ctx, update, stored))
	assert.Equal(t, domain.RoleAdmin, update.Role)
	assert.Equal(t, "hash", update.PasswordHash)

	demote := &domain.User{Username: "root", Role: domain.RoleUser}
	require.NoError(t, HashUserPassword(ctx, demote, stored))
	assert.Equal(t, domain.RoleUser, demote.Role)
}
