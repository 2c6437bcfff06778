package fundraising

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the object store holding cover images
// and supporting documents. Files are uploaded by the client directly
// through presigned URLs; the backend never proxies file bytes.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// coverContentTypes are the accepted cover image MIME types
var coverContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// documentContentTypes are the accepted supporting document MIME types
var documentContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// MediaService issues presigned upload URLs for fundraiser media.
// Ownership is checked before any URL is handed out.
type MediaService struct {
	fundraiserRepo fundraising.FundraiserRepository
	storage        ObjectStorageService
	urlExpiry      time.Duration
}

// NewMediaService creates a new MediaService
func NewMediaService(
	fundraiserRepo fundraising.FundraiserRepository,
	storage ObjectStorageService,
	urlExpiry time.Duration,
) *MediaService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &MediaService{
		fundraiserRepo: fundraiserRepo,
		storage:        storage,
		urlExpiry:      urlExpiry,
	}
}

// RequestCoverUploadURL issues a presigned URL for uploading a cover image
// to one of the caller's fundraisers
func (s *MediaService) RequestCoverUploadURL(ctx context.Context, ownerID, fundraiserID uuid.UUID, contentType string) (*UploadURLResponse, error) {
	ext, ok := coverContentTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError("content_type", fmt.Sprintf("Unsupported cover image type: %s", contentType))
	}

	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("fundraisers/%s/cover/%s%s", f.ID, uuid.New(), ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// RequestDocumentUploadURL issues a presigned URL for uploading a
// supporting document to one of the caller's fundraisers
func (s *MediaService) RequestDocumentUploadURL(ctx context.Context, ownerID, fundraiserID uuid.UUID, fileName, contentType string) (*UploadURLResponse, error) {
	ext, ok := documentContentTypes[contentType]
	if !ok {
		return nil, shared.NewValidationError("content_type", fmt.Sprintf("Unsupported document type: %s", contentType))
	}

	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("fundraisers/%s/documents/%s-%s", f.ID, uuid.New(), sanitizeFileName(fileName, ext))
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:  url,
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ResolveDownloadURL issues a presigned download URL for a stored object
func (s *MediaService) ResolveDownloadURL(ctx context.Context, storageKey string) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, shared.NewValidationError("storage_key", "Storage key is required")
	}
	return s.storage.GenerateDownloadURL(ctx, storageKey, s.urlExpiry)
}

// sanitizeFileName strips path components and unsafe characters from a
// client-supplied file name, falling back to a generic name when nothing
// usable remains.
func sanitizeFileName(name, ext string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "document" + ext
	}
	if !strings.Contains(cleaned, ".") {
		cleaned += ext
	}
	return cleaned
}
