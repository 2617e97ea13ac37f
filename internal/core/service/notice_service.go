package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
)

const attachmentFolder = "notices"

// NoticeService implements notice CRUD with a read-through cache on the
// published list and attachment uploads to the blob store.
type NoticeService struct {
	repo  ports.NoticeRepository
	cache ports.NoticeCache
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewNoticeService(repo ports.NoticeRepository, cache ports.NoticeCache, blobs ports.BlobStore, log zerolog.Logger) *NoticeService {
	return &NoticeService{repo: repo, cache: cache, blobs: blobs, log: log}
}

// ListPublished serves the public notice list, preferring the cache.
// Cache failures degrade to a repository read.
func (s *NoticeService) ListPublished(ctx context.Context) ([]domain.Notice, error) {
	cached, err := s.cache.GetPublished(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("notice cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	notices, err := s.repo.FindPublished(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPublished(ctx, notices); err != nil {
		s.log.Warn().Err(err).Msg("notice cache write failed")
	}
	return notices, nil
}

func (s *NoticeService) ListAll(ctx context.Context) ([]domain.Notice, error) {
	return s.repo.FindAll(ctx)
}

func (s *NoticeService) Get(ctx context.Context, id string) (*domain.Notice, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NoticeService) Create(ctx context.Context, in ports.NoticeInput) (*domain.Notice, error) {
	now := time.Now().UTC()
	n := &domain.Notice{
		Title:         in.Title,
		Body:          in.Body,
		AttachmentURL: in.AttachmentURL,
		Published:     in.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *NoticeService) Update(ctx context.Context, id string, in ports.NoticeInput) (*domain.Notice, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Title = in.Title
	n.Body = in.Body
	n.AttachmentURL = in.AttachmentURL
	n.Published = in.Published
	n.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, n)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UploadAttachment pushes the file to blob storage and returns its URL.
func (s *NoticeService) UploadAttachment(ctx context.Context, data []byte, contentType string) (string, error) {
	return s.blobs.Upload(ctx, data, attachmentFolder, contentType)
}

func (s *NoticeService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("notice cache invalidation failed")
	}
}
