package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/api/middleware"
	"github.com/examboard/portal-api/internal/core/token"
)

// ctxClaims extracts the claims injected by the guard or auth middleware and
// fast-fails before any service call: a missing or subject-less claims value
// means no verification ran on this route, which is a wiring bug surfaced as
// a 401 rather than a panic deeper down.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*token.Claims)
	if claims == nil || claims.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
