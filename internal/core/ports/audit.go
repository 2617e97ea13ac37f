package ports

import (
	"context"
	"time"

	"github.com/examboard/portal-api/internal/core/domain"
)

// AuditEventInput is the DTO enqueued by the transport layer for the
// audit trail workers.
type AuditEventInput struct {
	SubjectID string
	Email     string
	Action    string
	Detail    string
	Timestamp time.Time
}

// AuditService persists a single audit event.
type AuditService interface {
	Record(ctx context.Context, in AuditEventInput) error
}

// AuditDispatcher accepts events without blocking the request path.
type AuditDispatcher interface {
	Enqueue(event AuditEventInput)
}

// AuditRepository defines persistence for audit events.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEvent) error
	ListBySubject(ctx context.Context, subjectID string, limit int64) ([]domain.AuditEvent, error)
}
