package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password; callers must not be able to tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrPrincipalExists    = errors.New("principal already exists")
	ErrUpstream           = errors.New("upstream dependency unavailable")
)

// Principal models an authenticated account, user or admin.
// The password hash never leaves the server (json:"-").
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	RegNumber    string    `json:"registration_number,omitempty"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
