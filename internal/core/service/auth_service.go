package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
	"github.com/examboard/portal-api/internal/core/token"
)

// dummyHash is compared against when the identifier matches no account, so a
// missing account costs the same bcrypt work as a wrong password.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("nobody"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.PrincipalRepository
	issuer *token.Issuer
	audit  ports.AuditDispatcher
	log    zerolog.Logger
}

func NewAuthService(repo ports.PrincipalRepository, issuer *token.Issuer, audit ports.AuditDispatcher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, audit: audit, log: log}
}

// Register creates a user-role principal and issues its first token.
// Registration never creates admins; those are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Principal{
		Email:        strings.ToLower(in.Email),
		RegNumber:    in.RegNumber,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, "", err
	}

	signed, err := s.issuer.Issue(created)
	if err != nil {
		return nil, "", err
	}

	s.audit.Enqueue(ports.AuditEventInput{
		SubjectID: created.ID,
		Email:     created.Email,
		Action:    domain.AuditRegistered,
		Timestamp: now,
	})

	return created, signed, nil
}

// Login verifies the identifier/password pair against the stored hash and
// mints a token. Unknown identifier and wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Principal, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	p, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.auditFailure(identifier, "unknown identifier")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		s.auditFailure(p.Email, "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(p)
	if err != nil {
		return "", nil, err
	}

	s.audit.Enqueue(ports.AuditEventInput{
		SubjectID: p.ID,
		Email:     p.Email,
		Action:    domain.AuditLoginSucceeded,
		Timestamp: time.Now().UTC(),
	})
	s.log.Debug().Str("email", p.Email).Str("role", p.Role).Msg("login succeeded")

	return signed, p, nil
}

// auditFailure records a failed attempt. The detail stays server-side; the
// client sees only the generic invalid-credentials outcome.
func (s *AuthService) auditFailure(email, detail string) {
	s.audit.Enqueue(ports.AuditEventInput{
		Email:     email,
		Action:    domain.AuditLoginFailed,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
