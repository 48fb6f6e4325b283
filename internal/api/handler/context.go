package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenderdesk/business-api/internal/api/middleware"
	"github.com/tenderdesk/business-api/internal/core/domain"
)

// ctxIdentity extracts the Identity injected by the Auth middleware and
// fails fast before any service call:
//   - the identity must be present (presence proves the middleware ran).
//   - the id must be non-empty; records are stamped with it.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if identity.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}
	return identity, nil
}
