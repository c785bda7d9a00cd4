package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/whotfvasu/fp/internal/storage"
)

// Storage implements storage.Storage using an in-memory map. It stores
// metadata only (no image bytes) and is intended for tests and local
// development without an image host account.
type Storage struct {
	mu      sync.RWMutex
	uploads map[string]string
	baseURL string
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		uploads: make(map[string]string),
		baseURL: baseURL,
	}
}

// Upload records the upload and returns a deterministic local URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	url := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, id, input.Filename)
	s.uploads[id] = url

	return &storage.UploadResult{URL: url}, nil
}

// Len reports the number of uploads recorded, for assertions in tests.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}
