package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		allowed  []string
		wantCode int
		wantNext bool
	}{
		{"admin allowed", &domain.Identity{ID: "u-1", Role: domain.RoleAdmin}, []string{domain.RoleAdmin}, http.StatusOK, true},
		{"any of several roles", &domain.Identity{ID: "u-2", Role: domain.RoleUser}, []string{domain.RoleAdmin, domain.RoleUser}, http.StatusOK, true},
		{"user forbidden", &domain.Identity{ID: "u-3", Role: domain.RoleUser}, []string{domain.RoleAdmin}, http.StatusForbidden, false},
		{"empty role forbidden", &domain.Identity{ID: "u-4"}, []string{domain.RoleAdmin}, http.StatusForbidden, false},
		{"no identity", nil, []string{domain.RoleAdmin}, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/users", nil), rec)
			if tt.identity != nil {
				c.Set(IdentityKey, *tt.identity)
			}

			called := false
			err := RBAC(tt.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantNext, called)
			assert.Equal(t, tt.wantCode, rec.Code)
			if !tt.wantNext {
				assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
			}
		})
	}
}
