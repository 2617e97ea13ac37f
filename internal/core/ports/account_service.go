package ports

import (
	"context"

	"github.com/examboard/portal-api/internal/core/domain"
)

// UpdateAccountInput carries the mutable profile fields. Empty fields are
// left unchanged; a non-empty password is re-hashed.
type UpdateAccountInput struct {
	FullName string
	Password string
}

// AccountService manages the principal owning the presented token.
type AccountService interface {
	Get(ctx context.Context, subjectID string) (*domain.Principal, error)
	Update(ctx context.Context, subjectID string, in UpdateAccountInput) (*domain.Principal, error)
	Delete(ctx context.Context, subjectID string) error
	// ListPrincipals is admin-only.
	ListPrincipals(ctx context.Context) ([]domain.Principal, error)
}
