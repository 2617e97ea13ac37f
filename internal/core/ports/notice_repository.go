package ports

import (
	"context"

	"github.com/examboard/portal-api/internal/core/domain"
)

// NoticeRepository defines persistence for notices.
type NoticeRepository interface {
	FindPublished(ctx context.Context) ([]domain.Notice, error)
	FindAll(ctx context.Context) ([]domain.Notice, error)
	FindByID(ctx context.Context, id string) (*domain.Notice, error)
	Insert(ctx context.Context, n *domain.Notice) (*domain.Notice, error)
	Update(ctx context.Context, n *domain.Notice) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
}

// NoticeCache is a best-effort cache of the published notice list.
// A miss is (nil, nil); cache failures never fail the read path.
type NoticeCache interface {
	GetPublished(ctx context.Context) ([]domain.Notice, error)
	SetPublished(ctx context.Context, notices []domain.Notice) error
	Invalidate(ctx context.Context) error
}

// BlobStore is the opaque object store attachments are uploaded to.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, folder, contentType string) (string, error)
}
