// Package token implements issuance and verification of the signed bearer
// tokens used across the portal. Tokens are stateless HS256 JWTs; there is
// no server-side revocation, lifecycle is fully determined by expiry.
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/examboard/portal-api/internal/core/domain"
)

// Claims is the only supported token payload shape. Subject carries the
// principal id; anything decoded that does not match this shape exactly is
// rejected as malformed at verification time.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Role  string `json:"role"`
}

// wellFormed checks the strict shape contract: subject, email, a known role,
// and both timing claims must be present.
func (c *Claims) wellFormed() bool {
	return c.Subject != "" &&
		c.Email != "" &&
		domain.ValidRole(c.Role) &&
		c.IssuedAt != nil &&
		c.ExpiresAt != nil
}
