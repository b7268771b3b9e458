package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// AuditRepository appends account-activity records to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// AuditPublisher hands an event to the asynchronous audit pipeline. Publish
// must not block the request path beyond queue admission.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}

// AuditService consumes published events and makes them durable.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// LoginAttemptStore counts consecutive failed logins per username. The
// counters exist for observability only: max-attempt and lockout settings
// are accepted in configuration but no login is ever blocked by them.
type LoginAttemptStore interface {
	// RecordFailure increments the failure counter and returns the new count.
	RecordFailure(ctx context.Context, username string) (int64, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
