package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/api/metrics"
	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
)

// CookieConfig describes the admin session cookie set by the page-surface
// login flow.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"full_name" validate:"required"`
	RegNumber string `json:"registration_number,omitempty"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string            `json:"token,omitempty"`
	Principal *domain.Principal `json:"principal,omitempty"`
}

// Register creates a new user account and issues its first token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, signed, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		RegNumber: req.RegNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: signed, Principal: principal})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (email or registration number)"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	signed, principal, err := h.login(c)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("user", "failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("user", "ok").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: signed, Principal: principal})
}

// AdminLogin authenticates an admin for the page surface: on success the
// token is set as an HTTP-only cookie in addition to the JSON body.
// Valid non-admin credentials are refused with a 403.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	signed, principal, err := h.login(c)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "failed").Inc()
		return err
	}
	if principal.Role != domain.RoleAdmin {
		metrics.LoginsTotal.WithLabelValues("admin", "failed").Inc()
		return domain.ErrForbidden
	}
	metrics.LoginsTotal.WithLabelValues("admin", "ok").Inc()

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, authResponse{Token: signed, Principal: principal})
}

// Logout clears the admin cookie. There is no server-side revocation: a
// previously issued token stays verifiable until it expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204  "no content"
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) login(c echo.Context) (string, *domain.Principal, error) {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
}
