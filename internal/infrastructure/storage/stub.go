package storage

import (
	"context"
	"time"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
)

var _ appfundraising.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage fakes ObjectStorageService for local development
// without a storage backend. URLs are synthesized, deletes succeed, and
// every object "exists" so upload confirmation flows can be exercised.
type StubObjectStorage struct {
	// BaseURL prefixes all generated upload/download URLs
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

func (s *StubObjectStorage) fakeURL(kind, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errStorageKeyRequired
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + kind + "/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// GenerateUploadURL generates a stub upload URL
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	return s.fakeURL("upload", storageKey, expiresIn)
}

// GenerateDownloadURL generates a stub download URL
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	return s.fakeURL("download", storageKey, expiresIn)
}

// DeleteObject is a no-op that always succeeds
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errStorageKeyRequired
	}
	return nil
}

// ObjectExists always reports true
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errStorageKeyRequired
	}
	return true, nil
}
