package ports

import "github.com/tenderdesk/business-api/internal/core/domain"

// TokenVerifier turns a bearer credential into an Identity. Implementations
// must not perform I/O or logging.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// TokenIssuer signs credentials for an authenticated user.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
