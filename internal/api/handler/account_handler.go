package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/core/ports"
)

// AccountHandler serves the principal behind the presented token. Data
// access is always scoped to the token subject; listing is admin-only and
// gated in the router.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type updateAccountRequest struct {
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// Me returns the authenticated principal's own record.
//
// @Summary      Get own account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/account [get]
func (h *AccountHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	p, err := h.accounts.Get(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update modifies the authenticated principal's profile.
//
// @Summary      Update own account
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Principal
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/account [put]
func (h *AccountHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.accounts.Update(c.Request().Context(), claims.Subject, ports.UpdateAccountInput{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes the authenticated principal's account. The token itself
// stays verifiable until expiry; the subject it names is simply gone.
//
// @Summary      Delete own account
// @Tags         account
// @Security     BearerAuth
// @Success      204  "no content"
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/account [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.accounts.Delete(c.Request().Context(), claims.Subject); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns all principals. Admin only.
//
// @Summary      List principals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Principal
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/admin/principals [get]
func (h *AccountHandler) List(c echo.Context) error {
	principals, err := h.accounts.ListPrincipals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principals)
}
