package service

import (
	"context"
	"fmt"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
)

// AuditService persists audit events delivered by the dispatcher workers.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, in ports.AuditEventInput) error {
	e := &domain.AuditEvent{
		SubjectID: in.SubjectID,
		Email:     in.Email,
		Action:    in.Action,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}
