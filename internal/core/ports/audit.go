package ports

import (
	"context"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

// AuditSink accepts audit events without blocking the caller.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertAudit(ctx context.Context, event *domain.AuditEvent) error
}
