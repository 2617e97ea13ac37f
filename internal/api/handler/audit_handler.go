package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditHandler exposes the authentication audit trail to admins.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns audit events for a subject, newest first.
//
// @Summary      List audit events for a principal
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        subject  query     string  true   "Principal id"
// @Param        limit    query     int     false  "Maximum events to return (default 100)"
// @Success      200      {array}   domain.AuditEvent
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/v1/admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject is required")
	}

	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	events, err := h.repo.ListBySubject(c.Request().Context(), subject, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
