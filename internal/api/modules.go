package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tenderdesk/business-api/internal/api/handler"
	"github.com/tenderdesk/business-api/internal/api/middleware"
	"github.com/tenderdesk/business-api/internal/api/registry"
	"github.com/tenderdesk/business-api/internal/core/domain"
	"github.com/tenderdesk/business-api/internal/core/ports"
	"github.com/tenderdesk/business-api/internal/core/service"
	mongostore "github.com/tenderdesk/business-api/internal/infrastructure/db/mongo"
)

var (
	errNoDatabase    = errors.New("database not configured")
	errNoAuthService = errors.New("auth service not configured")
)

// ModuleDeps are the shared dependencies resource modules are built from.
type ModuleDeps struct {
	DB     *mongo.Database
	Auth   ports.AuthService
	Audit  ports.AuditSink
	Logger zerolog.Logger
}

// NewModules returns the module map mounted by registry.Mount. Every module
// is built lazily, so a missing dependency only disables the modules that
// need it.
func NewModules(d ModuleDeps) registry.Modules {
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	return registry.Modules{
		registry.AuthResource: authModule(d),

		"users": resource[domain.User](d, "users", mongostore.UsersCollection, service.ResourceConfig[domain.User]{
			BeforeSave: service.HashUserPassword,
		}, adminOnly),
		"roles":       resource[domain.Role](d, "roles", "roles", service.ResourceConfig[domain.Role]{}, adminOnly),
		"permissions": resource[domain.Permission](d, "permissions", "permissions", service.ResourceConfig[domain.Permission]{}, adminOnly),

		"tenders": resource[domain.Tender](d, "tenders", "tenders", service.ResourceConfig[domain.Tender]{}),

		"budgets": resource[domain.Budget](d, "budgets", "budgets", service.ResourceConfig[domain.Budget]{
			OwnerScoped: true,
		}),
		"financeaccounts": resource[domain.FinanceAccount](d, "finance_accounts", "finance_accounts", service.ResourceConfig[domain.FinanceAccount]{
			OwnerScoped: true,
		}),
		"transactions": resource[domain.Transaction](d, "transactions", "transactions", service.ResourceConfig[domain.Transaction]{
			OwnerScoped: true,
		}),
		registry.DebtsModule: resource[domain.Debt](d, "dolg_table", "dolg_table", service.ResourceConfig[domain.Debt]{
			OwnerScoped: true,
		}),
	}
}

func authModule(d ModuleDeps) registry.Factory {
	return func() (registry.Module, error) {
		if d.Auth == nil {
			return nil, errNoAuthService
		}
		h := handler.NewAuthHandler(d.Auth)
		return func(g *echo.Group) {
			g.POST("/login", h.Login)
			g.POST("/register", h.Register)
		}, nil
	}
}

// resource builds a CRUD module backed by one Mongo collection. guard runs
// on mutating routes only.
func resource[T any, P service.RecordPtr[T]](d ModuleDeps, name, collection string, cfg service.ResourceConfig[T], guard ...echo.MiddlewareFunc) registry.Factory {
	return func() (registry.Module, error) {
		if d.DB == nil {
			return nil, errNoDatabase
		}
		cfg.Name = name
		repo := mongostore.NewCollection[T](d.DB, collection)
		svc := service.NewResourceService[T, P](cfg, repo, d.Audit, d.Logger)
		h := handler.NewResourceHandler[T](name, svc)
		return func(g *echo.Group) {
			h.Register(g, guard...)
		}, nil
	}
}
