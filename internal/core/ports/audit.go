package ports

import (
	"context"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous persistence. Enqueue must
// never block a request on storage; events may be dropped on shutdown.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditRecorder is what the dispatcher workers call to persist one event.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository defines the persistence interface for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
