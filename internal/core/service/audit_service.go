package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the consumer side of the audit pipeline: events
// published by the auth and user services arrive here via the dispatcher and
// are appended to storage.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	s.log.Debug().
		Str("username", event.Username).
		Str("action", string(event.Action)).
		Msg("audit event recorded")
	return nil
}
