package ports

import (
	"context"

	"github.com/examboard/portal-api/internal/core/domain"
)

// PrincipalRepository defines persistence for principal accounts.
// FindByIdentifier matches the email case-insensitively or the
// registration number exactly as registered.
type PrincipalRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Principal, error)
}
