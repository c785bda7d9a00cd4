package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	apperrors "github.com/whotfvasu/fp/pkg/errors"

	"github.com/whotfvasu/fp/internal/storage"
)

// MaxImageSize is the largest review image accepted for upload.
const MaxImageSize = 10 << 20 // 10 MiB

// allowedImageTypes lists the content types accepted for review images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImageInput holds the parameters for uploading a review image.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// MediaService handles review image uploads to the configured image host.
type MediaService struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(store storage.Storage, logger *slog.Logger) *MediaService {
	return &MediaService{storage: store, logger: logger}
}

// UploadImage validates the file and forwards it to the image host. The
// returned URL is what clients attach to a review submission.
func (s *MediaService) UploadImage(ctx context.Context, input *UploadImageInput) (string, error) {
	if input.Filename == "" {
		return "", apperrors.InvalidInput("file name is required")
	}
	if input.Size <= 0 {
		return "", apperrors.InvalidInput("file is empty")
	}
	if input.Size > MaxImageSize {
		return "", apperrors.InvalidInput(fmt.Sprintf("file size %d exceeds maximum of %d bytes", input.Size, MaxImageSize))
	}
	if ct := strings.ToLower(input.ContentType); !allowedImageTypes[ct] {
		return "", apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("filename", input.Filename),
		slog.String("content_type", input.ContentType),
		slog.Int64("size", input.Size),
	)

	return result.URL, nil
}
