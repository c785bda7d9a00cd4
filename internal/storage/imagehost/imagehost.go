// Package imagehost uploads review images to an external image hosting
// service through an unsigned upload endpoint.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/whotfvasu/fp/internal/storage"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
	"github.com/whotfvasu/fp/pkg/httpclient"
)

// Config holds the settings for the image host upload endpoint.
type Config struct {
	// UploadURL is the full unsigned upload endpoint,
	// e.g. https://api.cloudinary.com/v1_1/<cloud>/image/upload.
	UploadURL string

	// UploadPreset names the unsigned upload preset configured on the host.
	UploadPreset string
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Storage implements storage.Storage against an external image host.
type Storage struct {
	cfg    Config
	client *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// New creates an image host storage backend.
func New(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Storage {
	return &Storage{cfg: cfg, client: client, logger: logger}
}

// Upload posts the image as multipart form data and returns the hosted URL.
// Host failures surface as upload errors so callers map them to 502.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", input.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, input.Data); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := mw.WriteField("upload_preset", s.cfg.UploadPreset); err != nil {
		return nil, fmt.Errorf("write upload preset: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := s.client.Post(ctx, s.cfg.UploadURL, mw.FormDataContentType(), &buf)
	if err != nil {
		s.logger.ErrorContext(ctx, "image host request failed",
			slog.String("error", err.Error()),
		)
		return nil, apperrors.UploadFailed(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.ErrorContext(ctx, "image host rejected upload",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, apperrors.UploadFailed(fmt.Errorf("image host returned status %d", resp.StatusCode))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.UploadFailed(fmt.Errorf("decode upload response: %w", err))
	}

	url := parsed.SecureURL
	if url == "" {
		url = parsed.URL
	}
	if url == "" {
		return nil, apperrors.UploadFailed(fmt.Errorf("upload response missing url"))
	}

	return &storage.UploadResult{URL: url}, nil
}
