package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/examboard/portal-api/internal/core/domain"
)

// Default validity windows. Admin sessions are deliberately short; user
// tokens live a week so the portal does not force daily logins.
const (
	DefaultAdminTTL = time.Hour
	DefaultUserTTL  = 7 * 24 * time.Hour
)

// Policy maps a role to its token validity window.
type Policy struct {
	AdminTTL time.Duration
	UserTTL  time.Duration
}

// DefaultPolicy returns the standard expiry table.
func DefaultPolicy() Policy {
	return Policy{AdminTTL: DefaultAdminTTL, UserTTL: DefaultUserTTL}
}

// TTLFor returns the validity window for the given role.
func (p Policy) TTLFor(role string) time.Duration {
	if role == domain.RoleAdmin {
		return p.AdminTTL
	}
	return p.UserTTL
}

// Issuer mints signed tokens for validated principals.
type Issuer struct {
	secret []byte
	policy Policy
	now    func() time.Time
}

// NewIssuer creates an Issuer signing with secret. Zero TTLs in policy fall
// back to the defaults; any other value is used as given, so a negative TTL
// mints tokens that are already expired.
func NewIssuer(secret string, policy Policy) *Issuer {
	if policy.AdminTTL == 0 {
		policy.AdminTTL = DefaultAdminTTL
	}
	if policy.UserTTL == 0 {
		policy.UserTTL = DefaultUserTTL
	}
	return &Issuer{secret: []byte(secret), policy: policy, now: time.Now}
}

// Issue produces a signed token for p. The principal must already have been
// authenticated (or freshly created by the registration flow).
func (i *Issuer) Issue(p *domain.Principal) (string, error) {
	now := i.now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.policy.TTLFor(p.Role))),
		},
		Email: p.Email,
		Role:  p.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
