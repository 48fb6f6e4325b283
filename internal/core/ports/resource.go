package ports

import (
	"context"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

// ListFilter carries the paging and ownership filter for a list query.
type ListFilter struct {
	CreatedBy string // empty = all records
	Page      int    // 1-based
	Limit     int
}

// ResourceRepository is the persistence contract shared by every CRUD resource.
type ResourceRepository[T any] interface {
	Insert(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter ListFilter) ([]*T, int64, error)
	Replace(ctx context.Context, id string, rec *T) error
	Delete(ctx context.Context, id string) error
}

// ListResult is one page of records.
type ListResult[T any] struct {
	Items      []*T  `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// ResourceService is the use-case layer behind a resource module. The actor
// is the Identity attached by the auth middleware.
type ResourceService[T any] interface {
	Create(ctx context.Context, actor domain.Identity, rec *T) (*T, error)
	Get(ctx context.Context, actor domain.Identity, id string) (*T, error)
	List(ctx context.Context, actor domain.Identity, page, limit int) (*ListResult[T], error)
	Update(ctx context.Context, actor domain.Identity, id string, rec *T) (*T, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
