package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examboard/portal-api/internal/api/metrics"
	"github.com/examboard/portal-api/internal/core/ports"
)

// maxUploadBytes caps attachment size at 16 MiB.
const maxUploadBytes = 16 << 20

// NoticeHandler handles notice reads for authenticated users and full CRUD
// plus attachment uploads for admins.
type NoticeHandler struct {
	notices ports.NoticeService
}

func NewNoticeHandler(notices ports.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

type noticeRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Body          string `json:"body" validate:"required"`
	AttachmentURL string `json:"attachment_url,omitempty" validate:"omitempty,url"`
	Published     bool   `json:"published"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// List returns the published notices. Any valid token.
//
// @Summary      List published notices
// @Tags         notices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Notice
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/notices [get]
func (h *NoticeHandler) List(c echo.Context) error {
	notices, err := h.notices.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notices)
}

// AdminList returns all notices including unpublished drafts. Admin only.
//
// @Summary      List all notices
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Notice
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/admin/notices [get]
func (h *NoticeHandler) AdminList(c echo.Context) error {
	notices, err := h.notices.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notices)
}

// Get returns a single notice by id. Admin only (drafts included).
//
// @Summary      Get a notice
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notice id"
// @Success      200  {object}  domain.Notice
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/notices/{id} [get]
func (h *NoticeHandler) Get(c echo.Context) error {
	n, err := h.notices.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Create creates a notice. Admin only.
//
// @Summary      Create a notice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      noticeRequest  true  "Notice"
// @Success      201   {object}  domain.Notice
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/admin/notices [post]
func (h *NoticeHandler) Create(c echo.Context) error {
	in, err := bindNotice(c)
	if err != nil {
		return err
	}

	n, err := h.notices.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// Update replaces a notice. Admin only.
//
// @Summary      Update a notice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Notice id"
// @Param        body  body      noticeRequest  true  "Notice"
// @Success      200   {object}  domain.Notice
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/admin/notices/{id} [put]
func (h *NoticeHandler) Update(c echo.Context) error {
	in, err := bindNotice(c)
	if err != nil {
		return err
	}

	n, err := h.notices.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Delete removes a notice. Admin only.
//
// @Summary      Delete a notice
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Notice id"
// @Success      204  "no content"
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/notices/{id} [delete]
func (h *NoticeHandler) Delete(c echo.Context) error {
	if err := h.notices.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Upload stores a multipart file in blob storage and returns its URL.
// Admin only.
//
// @Summary      Upload a notice attachment
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Attachment file"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/admin/uploads [post]
func (h *NoticeHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds the upload limit")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	url, err := h.notices.UploadAttachment(c.Request().Context(), data, fh.Header.Get("Content-Type"))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

func bindNotice(c echo.Context) (ports.NoticeInput, error) {
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return ports.NoticeInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.NoticeInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.NoticeInput{
		Title:         req.Title,
		Body:          req.Body,
		AttachmentURL: req.AttachmentURL,
		Published:     req.Published,
	}, nil
}
