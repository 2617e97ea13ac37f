package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. All three surface to clients as a plain 401; they
// stay distinct here for logging and tests.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Verifier validates token strings against the shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify checks signature and expiry and returns the parsed claims.
// Expiry wins over a bad signature: a token past its exp always reports
// ErrExpired.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)

	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})

	switch {
	case err == nil && tok.Valid:
		if !claims.wellFormed() {
			return nil, ErrMalformed
		}
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		if v.expiredIgnoringSignature(parser, raw) {
			return nil, ErrExpired
		}
		return nil, ErrSignatureInvalid
	default:
		return nil, ErrMalformed
	}
}

// expiredIgnoringSignature decodes the payload without verifying it, so that
// an expired token with a foreign signature still reports as expired.
func (v *Verifier) expiredIgnoringSignature(parser *jwt.Parser, raw string) bool {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !v.now().Before(claims.ExpiresAt.Time)
}
