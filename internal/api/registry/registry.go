// Package registry holds the table of resource modules and mounts them on
// the echo router.
//
// The table is built once at startup and only read afterwards. Modules are
// looked up in a compile-time map; a module that cannot be resolved is logged
// and skipped so that one broken resource never stops the service.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenderdesk/business-api/internal/api/metrics"
	"github.com/tenderdesk/business-api/internal/core/domain"
)

const (
	// AuthResource is the only entry mounted without authentication.
	AuthResource = "auth"
	// AccountsResource is served by the debt table module so that the old
	// /accounts URLs keep working next to /dolg_table.
	AccountsResource = "accounts"
	DebtsModule      = "dolgtable"
)

var ErrDuplicatePrefix = errors.New("duplicate route prefix")

// Entry binds a logical resource name to a URL prefix.
type Entry struct {
	Name   string
	Prefix string
}

// Table is the ordered list of entries; mounting follows declaration order.
type Table []Entry

// DefaultTable returns the route table of the application.
func DefaultTable() Table {
	return Table{
		{Name: AuthResource, Prefix: "/auth"},
		{Name: "users", Prefix: "/users"},
		{Name: "roles", Prefix: "/roles"},
		{Name: "permissions", Prefix: "/permissions"},
		{Name: "tenders", Prefix: "/tenders"},
		{Name: "budgets", Prefix: "/budgets"},
		{Name: "financeaccounts", Prefix: "/finance_accounts"},
		{Name: "transactions", Prefix: "/transactions"},
		{Name: DebtsModule, Prefix: "/dolg_table"},
		{Name: AccountsResource, Prefix: "/accounts"},
	}
}

// Validate checks that every prefix is a rooted path and unique.
func (t Table) Validate() error {
	seen := make(map[string]string, len(t))
	for _, e := range t {
		if e.Name == "" || !strings.HasPrefix(e.Prefix, "/") || e.Prefix == "/" {
			return fmt.Errorf("invalid route entry %q -> %q", e.Name, e.Prefix)
		}
		if other, dup := seen[e.Prefix]; dup {
			return fmt.Errorf("%w: %s used by %q and %q", ErrDuplicatePrefix, e.Prefix, other, e.Name)
		}
		seen[e.Prefix] = e.Name
	}
	return nil
}

// ModuleFor returns the module name that serves the named entry.
func ModuleFor(name string) string {
	if name == AccountsResource {
		return DebtsModule
	}
	return name
}

// Module registers a resource's routes on its group.
type Module func(g *echo.Group)

// Factory builds a Module. A returned error (or a panic) marks the module as
// unresolvable.
type Factory func() (Module, error)

// Modules maps module names to their factories.
type Modules map[string]Factory

// Resolve builds the named module, converting every failure, panics
// included, into an error wrapping domain.ErrModuleResolution.
func (m Modules) Resolve(name string) (mod Module, err error) {
	factory, ok := m[name]
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %s: no module registered", domain.ErrModuleResolution, name)
	}

	defer func() {
		if r := recover(); r != nil {
			mod, err = nil, fmt.Errorf("%w: %s: panic: %v", domain.ErrModuleResolution, name, r)
		}
	}()

	mod, err = factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrModuleResolution, name, err)
	}
	if mod == nil {
		return nil, fmt.Errorf("%w: %s: factory returned no module", domain.ErrModuleResolution, name)
	}
	return mod, nil
}

// Failure is an entry whose module could not be resolved.
type Failure struct {
	Entry
	Err error
}

// Report summarises a Mount call.
type Report struct {
	Mounted []Entry
	Failed  []Failure
}

// Mount mounts every entry of table on e in declaration order. Entries other
// than auth are wrapped with authMW. Module resolution failures are logged
// and skipped; an invalid table and panics raised while a resolved module
// registers its routes abort startup.
func Mount(e *echo.Echo, table Table, modules Modules, authMW echo.MiddlewareFunc, log zerolog.Logger) (Report, error) {
	var report Report
	if err := table.Validate(); err != nil {
		return report, err
	}

	for _, entry := range table {
		module, err := modules.Resolve(ModuleFor(entry.Name))
		if err != nil {
			log.Warn().
				Err(err).
				Str("resource", entry.Name).
				Str("prefix", entry.Prefix).
				Msg("resource module not mounted")
			metrics.RouteMountsTotal.WithLabelValues("failed").Inc()
			report.Failed = append(report.Failed, Failure{Entry: entry, Err: err})
			continue
		}

		var g *echo.Group
		if entry.Name == AuthResource {
			g = e.Group(entry.Prefix)
		} else {
			g = e.Group(entry.Prefix, authMW)
		}
		module(g)

		log.Info().
			Str("resource", entry.Name).
			Str("prefix", entry.Prefix).
			Bool("public", entry.Name == AuthResource).
			Msg("resource module mounted")
		metrics.RouteMountsTotal.WithLabelValues("mounted").Inc()
		report.Mounted = append(report.Mounted, entry)
	}

	return report, nil
}
