package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
)

// AccountService manages the principal record behind a verified token.
// All operations are scoped to the token subject; only ListPrincipals
// reaches across accounts and the router restricts it to admins.
type AccountService struct {
	repo  ports.PrincipalRepository
	audit ports.AuditDispatcher
}

func NewAccountService(repo ports.PrincipalRepository, audit ports.AuditDispatcher) *AccountService {
	return &AccountService{repo: repo, audit: audit}
}

func (s *AccountService) Get(ctx context.Context, subjectID string) (*domain.Principal, error) {
	return s.repo.FindByID(ctx, subjectID)
}

func (s *AccountService) Update(ctx context.Context, subjectID string, in ports.UpdateAccountInput) (*domain.Principal, error) {
	p, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		p.FullName = in.FullName
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		p.PasswordHash = string(hash)
	}
	p.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, p)
}

func (s *AccountService) Delete(ctx context.Context, subjectID string) error {
	p, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, subjectID); err != nil {
		return err
	}

	s.audit.Enqueue(ports.AuditEventInput{
		SubjectID: p.ID,
		Email:     p.Email,
		Action:    domain.AuditAccountDeleted,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *AccountService) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	return s.repo.List(ctx)
}
