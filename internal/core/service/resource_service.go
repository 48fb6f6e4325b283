package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tenderdesk/business-api/internal/core/domain"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit far from int overflow.
	maxPage = 1_000_000
)

// RecordPtr constrains P to *T where *T embeds domain.Meta.
type RecordPtr[T any] interface {
	*T
	domain.Record
}

// BeforeSave runs before a record is written. existing is nil on create.
type BeforeSave[T any] func(ctx context.Context, incoming, existing *T) error

// ResourceConfig describes one CRUD resource.
type ResourceConfig[T any] struct {
	// Name is the resource name used in logs, metrics and audit events.
	Name string
	// OwnerScoped hides other users' records from non-admin callers.
	OwnerScoped bool
	BeforeSave  BeforeSave[T]
}

// ResourceService implements ports.ResourceService for any record type.
type ResourceService[T any, P RecordPtr[T]] struct {
	cfg   ResourceConfig[T]
	repo  ports.ResourceRepository[T]
	audit ports.AuditSink
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewResourceService[T any, P RecordPtr[T]](cfg ResourceConfig[T], repo ports.ResourceRepository[T], audit ports.AuditSink, log zerolog.Logger) *ResourceService[T, P] {
	return &ResourceService[T, P]{
		cfg:   cfg,
		repo:  repo,
		audit: audit,
		log:   log.With().Str("resource", cfg.Name).Logger(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *ResourceService[T, P]) Create(ctx context.Context, actor domain.Identity, rec *T) (*T, error) {
	if s.cfg.BeforeSave != nil {
		if err := s.cfg.BeforeSave(ctx, rec, nil); err != nil {
			return nil, err
		}
	}

	now := s.now()
	meta := P(rec).Base()
	meta.ID = s.newID()
	meta.CreatedBy = actor.ID
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.cfg.Name, err)
	}

	s.log.Info().Str("id", meta.ID).Str("actor_id", actor.ID).Msg("record created")
	s.record(domain.AuditCreate, meta.ID, actor, now)
	return rec, nil
}

func (s *ResourceService[T, P]) Get(ctx context.Context, actor domain.Identity, id string) (*T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visible(actor, P(rec).Base()) {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (s *ResourceService[T, P]) List(ctx context.Context, actor domain.Identity, page, limit int) (*ports.ListResult[T], error) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListFilter{Page: page, Limit: limit}
	if s.cfg.OwnerScoped && !actor.IsAdmin() {
		filter.CreatedBy = actor.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.cfg.Name, err)
	}
	if items == nil {
		items = []*T{}
	}

	return &ports.ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Update replaces the stored record. Ownership and creation fields are kept
// from the stored copy whatever the payload says.
func (s *ResourceService[T, P]) Update(ctx context.Context, actor domain.Identity, id string, rec *T) (*T, error) {
	existing, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if s.cfg.BeforeSave != nil {
		if err := s.cfg.BeforeSave(ctx, rec, existing); err != nil {
			return nil, err
		}
	}

	prev := P(existing).Base()
	now := s.now()
	meta := P(rec).Base()
	meta.ID = prev.ID
	meta.CreatedBy = prev.CreatedBy
	meta.CreatedAt = prev.CreatedAt
	meta.UpdatedAt = now

	if err := s.repo.Replace(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("update %s: %w", s.cfg.Name, err)
	}

	s.log.Info().Str("id", id).Str("actor_id", actor.ID).Msg("record updated")
	s.record(domain.AuditUpdate, id, actor, now)
	return rec, nil
}

func (s *ResourceService[T, P]) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.cfg.Name, err)
	}

	s.log.Info().Str("id", id).Str("actor_id", actor.ID).Msg("record deleted")
	s.record(domain.AuditDelete, id, actor, s.now())
	return nil
}

func (s *ResourceService[T, P]) visible(actor domain.Identity, meta *domain.Meta) bool {
	return !s.cfg.OwnerScoped || actor.IsAdmin() || meta.CreatedBy == actor.ID
}

func (s *ResourceService[T, P]) record(op domain.AuditOp, id string, actor domain.Identity, at time.Time) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Resource: s.cfg.Name,
		Op:       op,
		RecordID: id,
		ActorID:  actor.ID,
		At:       at,
	})
}
