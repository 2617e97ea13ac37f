package ports

import (
	"context"

	"github.com/examboard/portal-api/internal/core/domain"
)

// RegisterInput carries the fields of a public registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	RegNumber string
}

// AuthService authenticates principals and mints tokens.
type AuthService interface {
	// Register creates a user-role principal and returns it with a freshly
	// issued token.
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, string, error)
	// Login verifies credentials (email or registration number as the
	// identifier) and returns a signed token plus the principal.
	Login(ctx context.Context, identifier, password string) (string, *domain.Principal, error)
}
