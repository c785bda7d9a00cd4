package storage

import (
	"context"
	"io"
)

// Storage defines the interface for review image storage.
type Storage interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
}

// UploadInput holds the parameters for uploading an image.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	URL string
}
