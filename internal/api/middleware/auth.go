package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenderdesk/business-api/internal/api/metrics"
	"github.com/tenderdesk/business-api/internal/core/domain"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the caller's domain.Identity.
const IdentityKey = "identity"

const bearerPrefix = "Bearer "

type errorBody struct {
	Error string `json:"error"`
}

// Auth validates the bearer token and attaches the caller's Identity to the
// echo context. Every invocation emits exactly one log event: warn for a
// missing or malformed header, error for a failed verification, debug on
// success.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method, path := req.Method, req.URL.Path

			authHeader := req.Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn().Str("method", method).Str("path", path).Msg("missing authorization header")
				return reject(c, "missing", domain.ErrMissingCredential)
			}

			// The scheme is matched case-sensitively with a single space.
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				log.Warn().Str("method", method).Str("path", path).Msg("malformed authorization header")
				return reject(c, "malformed", domain.ErrMalformedCredential)
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					log.Error().Err(err).Str("method", method).Str("path", path).Msg("token expired")
					return reject(c, "expired", domain.ErrExpiredToken)
				}
				log.Error().Err(err).Str("method", method).Str("path", path).Msg("token verification failed")
				return reject(c, "invalid", domain.ErrInvalidToken)
			}

			c.Set(IdentityKey, identity)
			log.Debug().
				Str("id", identity.ID).
				Str("role", identity.Role).
				Str("method", method).
				Str("path", path).
				Msg("request authenticated")

			return next(c)
		}
	}
}

func reject(c echo.Context, reason string, err error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return c.JSON(http.StatusUnauthorized, errorBody{Error: err.Error()})
}

// IdentityFrom returns the Identity attached by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(domain.Identity)
	return identity, ok
}
