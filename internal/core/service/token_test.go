package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	want := domain.Identity{ID: "u-1", Role: domain.RoleAdmin, Username: "alice"}

	token, err := svc.Issue(want)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, got, again, "verification must be repeatable")
}

func TestTokenService_Verify_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", time.Minute)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue(domain.Identity{ID: "u-1", Role: domain.RoleUser, Username: "bob"})
	require.NoError(t, err)

	svc.now = fixedClock(issuedAt.Add(2 * time.Minute))
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
	assert.False(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("other", time.Hour).Issue(domain.Identity{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(domain.Identity{ID: "u-1", Role: domain.RoleUser})
	require.NoError(t, err)

	// Swap the payload for one claiming admin while keeping the signature.
	forged, err := NewTokenService("attacker", time.Hour).Issue(domain.Identity{ID: "u-1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_Verify_RejectsOtherAlgorithms(t *testing.T) {
	claims := identityClaims{UserID: "u-1", Role: domain.RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Verify_NoExpiry(t *testing.T) {
	claims := identityClaims{UserID: "u-9", Role: domain.RoleUser, Username: "carol"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := NewTokenService("secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "u-9", Role: domain.RoleUser, Username: "carol"}, got)
}
