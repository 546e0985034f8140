package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/storage"
)

const (
	defaultMaxUploadBytes = 10 << 20

	originalMaxSide  = 1600
	thumbnailMaxSide = 320
)

// Service handles photo uploads and downloads.
type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, ownerID string) (*Photo, error)
	GetByID(ctx context.Context, id string) (*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	blobs    storage.BlobStore
	images   *storage.ImageProcessor
	maxBytes int64
	log      zerolog.Logger
}

// NewService creates a photo Service. maxBytes caps accepted uploads; zero
// selects the default limit.
func NewService(repo Repository, blobs storage.BlobStore, maxBytes int64, log zerolog.Logger) Service {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &service{
		repo:     repo,
		blobs:    blobs,
		images:   storage.NewImageProcessor(),
		maxBytes: maxBytes,
		log:      log.With().Str("component", "photo").Logger(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, ownerID string) (*Photo, error) {
	if header.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// LimitReader guards against a lying Content-Length.
	raw, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(raw)) > s.maxBytes {
		return nil, ErrTooLarge
	}
	if !strings.HasPrefix(http.DetectContentType(raw), "image/") {
		return nil, ErrNotImage
	}

	// Re-encode the original so stored photos are bounded JPEGs regardless
	// of the uploaded format.
	original, err := s.images.FitJPEG(bytes.NewReader(raw), originalMaxSide, originalMaxSide)
	if err != nil {
		return nil, ErrNotImage
	}
	originalBytes, err := io.ReadAll(original)
	if err != nil {
		return nil, fmt.Errorf("read encoded image: %w", err)
	}

	thumbnail, err := s.images.FitJPEG(bytes.NewReader(raw), thumbnailMaxSide, thumbnailMaxSide)
	if err != nil {
		return nil, ErrNotImage
	}

	id := uuid.New().String()
	shard := id[:2]
	storagePath := fmt.Sprintf("photos/%s/%s.jpg", shard, id)
	thumbnailPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, id)

	if err := s.blobs.Save(ctx, storagePath, bytes.NewReader(originalBytes)); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}
	if err := s.blobs.Save(ctx, thumbnailPath, thumbnail); err != nil {
		_ = s.blobs.Remove(ctx, storagePath)
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	p := &Photo{
		ID:            id,
		OwnerID:       ownerID,
		Filename:      header.Filename,
		ContentType:   "image/jpeg",
		Size:          int64(len(originalBytes)),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.blobs.Remove(ctx, storagePath)
		_ = s.blobs.Remove(ctx, thumbnailPath)
		return nil, err
	}

	s.log.Info().Str("photo_id", p.ID).Str("owner_id", ownerID).Int64("size", p.Size).Msg("photo uploaded")
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.blobs.Open(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open photo blob: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == "" {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.blobs.Open(ctx, p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open thumbnail blob: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, p.StoragePath); err != nil {
		s.log.Warn().Err(err).Str("photo_id", id).Msg("failed to remove photo blob")
	}
	if p.ThumbnailPath != "" {
		if err := s.blobs.Remove(ctx, p.ThumbnailPath); err != nil {
			s.log.Warn().Err(err).Str("photo_id", id).Msg("failed to remove thumbnail blob")
		}
	}
	return s.repo.Delete(ctx, id)
}
