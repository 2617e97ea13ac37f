package handler

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the two bare shells the page surface needs: the login
// page the edge guard redirects to, and the admin landing page behind it.
// The real admin UI is a separate frontend; these exist so the cookie-based
// navigation flow has endpoints to land on.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Login(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!doctype html><title>Sign in</title><h1>Exam board portal</h1><p>Sign in via POST /api/v1/auth/admin/login.</p>`)
}

func (h *PageHandler) AdminHome(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, `<!doctype html><title>Admin</title><h1>Signed in as `+html.EscapeString(claims.Email)+`</h1>`)
}
