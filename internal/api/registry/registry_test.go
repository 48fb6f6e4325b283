package registry

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

// requireToken is a stand-in for the auth middleware.
func requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) != "Bearer good" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}
		return next(c)
	}
}

// echoModule answers every route with the module name.
func echoModule(name string, hits map[string]int) Factory {
	return func() (Module, error) {
		return func(g *echo.Group) {
			h := func(c echo.Context) error {
				hits[name]++
				return c.String(http.StatusOK, name)
			}
			g.GET("", h)
			g.POST("/login", h)
		}, nil
	}
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	require.NoError(t, table.Validate())

	assert.Equal(t, Entry{Name: AuthResource, Prefix: "/auth"}, table[0])

	prefixes := map[string]string{}
	for _, e := range table {
		prefixes[e.Name] = e.Prefix
	}
	assert.Equal(t, "/dolg_table", prefixes[DebtsModule])
	assert.Equal(t, "/accounts", prefixes[AccountsResource])
	for _, name := range []string{"users", "roles", "permissions", "tenders", "budgets", "financeaccounts", "transactions"} {
		assert.Contains(t, prefixes, name)
	}
}

func TestTableValidate(t *testing.T) {
	err := Table{{Name: "a", Prefix: "/x"}, {Name: "b", Prefix: "/x"}}.Validate()
	assert.ErrorIs(t, err, ErrDuplicatePrefix)

	assert.Error(t, Table{{Name: "a", Prefix: "x"}}.Validate())
	assert.Error(t, Table{{Name: "a", Prefix: "/"}}.Validate())
	assert.Error(t, Table{{Name: "", Prefix: "/x"}}.Validate())
}

func TestModuleFor(t *testing.T) {
	assert.Equal(t, DebtsModule, ModuleFor(AccountsResource))
	assert.Equal(t, DebtsModule, ModuleFor(DebtsModule))
	assert.Equal(t, "tenders", ModuleFor("tenders"))
}

func TestMount_AuthIsPublicOthersProtected(t *testing.T) {
	e := echo.New()
	hits := map[string]int{}
	table := Table{{Name: "auth", Prefix: "/auth"}, {Name: "tenders", Prefix: "/tenders"}}
	modules := Modules{"auth": echoModule("auth", hits), "tenders": echoModule("tenders", hits)}

	report, err := Mount(e, table, modules, requireToken, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []Entry(table), report.Mounted)
	assert.Empty(t, report.Failed)

	rec := do(e, http.MethodPost, "/auth/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits["auth"])

	rec = do(e, http.MethodGet, "/tenders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, hits["tenders"], "handler must not run before authentication")

	rec = do(e, http.MethodGet, "/tenders", "good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits["tenders"])
}

func TestMount_AccountsAliasesDebtTable(t *testing.T) {
	e := echo.New()
	hits := map[string]int{}
	table := Table{{Name: DebtsModule, Prefix: "/dolg_table"}, {Name: AccountsResource, Prefix: "/accounts"}}
	modules := Modules{DebtsModule: echoModule(DebtsModule, hits)}

	report, err := Mount(e, table, modules, requireToken, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, report.Mounted, 2)

	for _, path := range []string{"/dolg_table", "/accounts"} {
		rec := do(e, http.MethodGet, path, "good")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, DebtsModule, rec.Body.String(), path)

		rec = do(e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	assert.Equal(t, 2, hits[DebtsModule])
}

func TestMount_BrokenModuleIsSkipped(t *testing.T) {
	cases := map[string]Factory{
		"missing": nil,
		"error": func() (Module, error) {
			return nil, errors.New("collection unavailable")
		},
		"panic": func() (Module, error) {
			panic("init exploded")
		},
		"nil module": func() (Module, error) {
			return nil, nil
		},
	}

	for name, broken := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			hits := map[string]int{}
			table := Table{
				{Name: "auth", Prefix: "/auth"},
				{Name: "budgets", Prefix: "/budgets"},
				{Name: "tenders", Prefix: "/tenders"},
			}
			modules := Modules{
				"auth":    echoModule("auth", hits),
				"tenders": echoModule("tenders", hits),
			}
			if broken != nil {
				modules["budgets"] = broken
			}

			var logs bytes.Buffer
			report, err := Mount(e, table, modules, requireToken, zerolog.New(&logs))
			require.NoError(t, err)

			require.Len(t, report.Failed, 1)
			assert.Equal(t, "budgets", report.Failed[0].Name)
			assert.ErrorIs(t, report.Failed[0].Err, domain.ErrModuleResolution)
			assert.Len(t, report.Mounted, 2)

			assert.Contains(t, logs.String(), `"level":"warn"`)
			assert.Contains(t, logs.String(), `"resource":"budgets"`)

			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/tenders", "good").Code)
			assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/auth/login", "").Code)
			assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/budgets", "good").Code)
		})
	}
}

func TestMount_DuplicatePrefixAborts(t *testing.T) {
	e := echo.New()
	hits := map[string]int{}
	table := Table{{Name: "tenders", Prefix: "/tenders"}, {Name: "budgets", Prefix: "/tenders"}}

	_, err := Mount(e, table, Modules{"tenders": echoModule("tenders", hits)}, requireToken, zerolog.Nop())
	assert.ErrorIs(t, err, ErrDuplicatePrefix)
}

func TestMount_RegistrationPanicPropagates(t *testing.T) {
	e := echo.New()
	modules := Modules{"tenders": func() (Module, error) {
		return func(*echo.Group) { panic("bad route") }, nil
	}}

	assert.Panics(t, func() {
		_, _ = Mount(e, Table{{Name: "tenders", Prefix: "/tenders"}}, modules, requireToken, zerolog.Nop())
	})
}

func TestResolve_WrapsCause(t *testing.T) {
	cause := errors.New("no db")
	_, err := Modules{"x": func() (Module, error) { return nil, cause }}.Resolve("x")
	assert.ErrorIs(t, err, domain.ErrModuleResolution)
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.Contains(err.Error(), "x"))
}
