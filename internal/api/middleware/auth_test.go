package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/token"
)

const testSecret = "secret"

func signedToken(t *testing.T, role string, policy token.Policy) string {
	t.Helper()
	issuer := token.NewIssuer(testSecret, policy)
	signed, err := issuer.Issue(&domain.Principal{
		ID:    "64f0c6a2e13a4b0001a1b2c3",
		Email: "alice@x.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signedToken(t, domain.RoleAdmin, token.DefaultPolicy())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(token.NewVerifier(testSecret))
	h := mw(func(c echo.Context) error {
		called = true
		claims, ok := c.Get(ClaimsKey).(*token.Claims)
		if !ok || claims.Email != "alice@x.com" {
			t.Fatalf("claims not set: %+v", c.Get(ClaimsKey))
		}
		if c.Get(RoleKey) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		if c.Get(SubjectIDKey) != "64f0c6a2e13a4b0001a1b2c3" {
			t.Fatalf("subject not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	assertAuthRejects(t, func(req *http.Request) {})
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	assertAuthRejects(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
}

func TestAuth_GarbageToken(t *testing.T) {
	assertAuthRejects(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := signedToken(t, domain.RoleAdmin, token.Policy{AdminTTL: -time.Hour, UserTTL: -time.Hour})
	assertAuthRejects(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+expired)
	})
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := token.NewIssuer("other-secret", token.DefaultPolicy())
	signed, err := issuer.Issue(&domain.Principal{ID: "id-1", Email: "a@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	assertAuthRejects(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
}

func TestAuth_SkipsWhenGuardAlreadyVerified(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	claims := &token.Claims{Email: "a@x.com", Role: domain.RoleUser}
	claims.Subject = "id-1"
	SetClaims(c, claims)

	called := false
	mw := Auth(token.NewVerifier(testSecret))
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func assertAuthRejects(t *testing.T, prepare func(*http.Request)) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(token.NewVerifier(testSecret))
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_TruthTable(t *testing.T) {
	roles := []string{domain.RoleUser, domain.RoleAdmin}
	for _, required := range roles {
		for _, held := range roles {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(RoleKey, held)

			mw := RequireRole(required)
			err := mw(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			if required == held {
				if err != nil || rec.Code != http.StatusOK {
					t.Fatalf("required=%s held=%s: expected allow, got err=%v code=%d", required, held, err, rec.Code)
				}
				continue
			}

			if err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("required=%s held=%s: expected 403, got %d", required, held, rec.Code)
			}
		}
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireRole(domain.RoleAdmin)
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
