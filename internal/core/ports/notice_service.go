package ports

import (
	"context"

	"github.com/examboard/portal-api/internal/core/domain"
)

// NoticeInput is the DTO for notice create/update.
type NoticeInput struct {
	Title         string
	Body          string
	AttachmentURL string
	Published     bool
}

// NoticeService exposes notice CRUD plus attachment upload.
type NoticeService interface {
	ListPublished(ctx context.Context) ([]domain.Notice, error)
	ListAll(ctx context.Context) ([]domain.Notice, error)
	Get(ctx context.Context, id string) (*domain.Notice, error)
	Create(ctx context.Context, in NoticeInput) (*domain.Notice, error)
	Update(ctx context.Context, id string, in NoticeInput) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
	UploadAttachment(ctx context.Context, data []byte, contentType string) (string, error)
}
