package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/api/metrics"
	"github.com/examboard/portal-api/internal/core/token"
)

// Surface identifies how a protected prefix is consumed, which decides both
// where credentials are read from and the shape of a rejection.
type Surface string

const (
	// SurfacePage covers browser navigation: the token travels in an
	// HTTP-only cookie and rejection is a redirect to the login page.
	SurfacePage Surface = "page"
	// SurfaceAPI covers programmatic calls: the token travels in the
	// Authorization header and rejection is a JSON 401.
	SurfaceAPI Surface = "api"
)

// GuardRule declares one protected path prefix.
type GuardRule struct {
	Prefix  string
	Surface Surface
}

// GuardConfig configures the edge router guard.
type GuardConfig struct {
	Rules      []GuardRule
	CookieName string
	LoginPath  string
}

// Guard intercepts every request ahead of the route handlers. Paths outside
// the protected prefixes pass through untouched; protected paths must carry
// a verifiable token on the surface-appropriate channel. On success the
// claims land in the context so handlers and RequireRole never re-verify.
func Guard(verifier *token.Verifier, cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, protected := matchRule(cfg.Rules, c.Request().URL.Path)
			if !protected {
				return next(c)
			}

			raw, ok := extractCredential(c, rule.Surface, cfg.CookieName)
			if !ok {
				return reject(c, rule.Surface, cfg.LoginPath, "missing")
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return reject(c, rule.Surface, cfg.LoginPath, verifyResult(err))
			}

			SetClaims(c, claims)
			return next(c)
		}
	}
}

// matchRule returns the first rule whose prefix matches path.
func matchRule(rules []GuardRule, path string) (GuardRule, bool) {
	for _, r := range rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return GuardRule{}, false
}

// extractCredential reads the token from the channel the surface uses.
func extractCredential(c echo.Context, surface Surface, cookieName string) (string, bool) {
	if surface == SurfacePage {
		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return "", false
		}
		return cookie.Value, true
	}

	raw, err := bearerToken(c)
	if err != nil {
		return "", false
	}
	return raw, true
}

// reject short-circuits the request in the surface's calling convention.
func reject(c echo.Context, surface Surface, loginPath, reason string) error {
	metrics.GuardRejectionsTotal.WithLabelValues(string(surface), reason).Inc()

	if surface == SurfacePage {
		return c.Redirect(http.StatusFound, loginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
