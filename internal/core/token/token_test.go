package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examboard/portal-api/internal/core/domain"
)

const testSecret = "test-secret"

func testPrincipal(role string) *domain.Principal {
	return &domain.Principal{
		ID:    "64f0c6a2e13a4b0001a1b2c3",
		Email: "a@x.com",
		Role:  role,
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer(testSecret, DefaultPolicy())
	verifier := NewVerifier(testSecret)

	for _, role := range []string{domain.RoleUser, domain.RoleAdmin} {
		p := testPrincipal(role)
		signed, err := issuer.Issue(p)
		require.NoError(t, err)

		claims, err := verifier.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, p.ID, claims.Subject)
		assert.Equal(t, p.Email, claims.Email)
		assert.Equal(t, role, claims.Role)
	}
}

func TestPolicy_TTLPerRole(t *testing.T) {
	issuer := NewIssuer(testSecret, DefaultPolicy())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return base }

	signed, err := issuer.Issue(testPrincipal(domain.RoleAdmin))
	require.NoError(t, err)
	claims := decode(t, signed)
	assert.Equal(t, base.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	signed, err = issuer.Issue(testPrincipal(domain.RoleUser))
	require.NoError(t, err)
	claims = decode(t, signed)
	assert.Equal(t, base.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestNewIssuer_TTLFallback(t *testing.T) {
	// Only unset TTLs take the defaults.
	issuer := NewIssuer(testSecret, Policy{})
	assert.Equal(t, DefaultAdminTTL, issuer.policy.AdminTTL)
	assert.Equal(t, DefaultUserTTL, issuer.policy.UserTTL)

	// A negative window is honoured and mints already-expired tokens.
	issuer = NewIssuer(testSecret, Policy{AdminTTL: -time.Hour, UserTTL: -time.Hour})
	signed, err := issuer.Issue(testPrincipal(domain.RoleAdmin))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer(testSecret, DefaultPolicy())
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := issuer.Issue(testPrincipal(domain.RoleAdmin))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_ExpiredWinsOverBadSignature(t *testing.T) {
	issuer := NewIssuer("another-secret", DefaultPolicy())
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := issuer.Issue(testPrincipal(domain.RoleAdmin))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_SignatureInvalid(t *testing.T) {
	issuer := NewIssuer("another-secret", DefaultPolicy())
	signed, err := issuer.Issue(testPrincipal(domain.RoleUser))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(signed)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	verifier := NewVerifier(testSecret)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := verifier.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestVerify_RejectsWrongShape(t *testing.T) {
	verifier := NewVerifier(testSecret)
	now := time.Now().UTC()

	cases := map[string]jwt.Claims{
		"missing subject": &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Email: "a@x.com",
			Role:  domain.RoleUser,
		},
		"unknown role": &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "id-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Email: "a@x.com",
			Role:  "superuser",
		},
		"missing expiry": &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:  "id-1",
				IssuedAt: jwt.NewNumericDate(now),
			},
			Email: "a@x.com",
			Role:  domain.RoleUser,
		},
		"foreign payload": jwt.MapClaims{
			"username": "alice",
			"exp":      now.Add(time.Hour).Unix(),
		},
	}

	for name, claims := range cases {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err, name)

		_, err = verifier.Verify(signed)
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestVerify_RejectsUnexpectedAlgorithm(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "id-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(signed)
	assert.Error(t, err)
}

func decode(t *testing.T, signed string) *Claims {
	t.Helper()
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	return claims
}
