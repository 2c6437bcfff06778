package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madadgar/backend/internal/infrastructure/config"
)

func validStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:          "madadgar-media",
		Region:          "ap-south-1",
		Endpoint:        "localhost:9000",
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
		URLExpiry:       15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKeyID = "" }, "access key ID is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretAccessKey = "" }, "secret access key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			tt.modify(cfg)

			_, err := NewS3ObjectStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewS3ObjectStorage_NilConfig(t *testing.T) {
	_, err := NewS3ObjectStorage(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is required")
}

func TestNewS3ObjectStorage_Defaults(t *testing.T) {
	cfg := validStorageConfig()
	cfg.URLExpiry = 0

	storage, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)

	assert.Equal(t, "madadgar-media", storage.GetBucket())
	assert.Equal(t, 15*time.Minute, storage.urlExpiry)
}

func TestS3ObjectStorage_GenerateUploadURL(t *testing.T) {
	storage, err := NewS3ObjectStorage(validStorageConfig())
	require.NoError(t, err)

	url, expiresAt, err := storage.GenerateUploadURL(context.Background(),
		"fundraisers/abc/cover/x.jpg", "image/jpeg", 10*time.Minute)
	require.NoError(t, err)

	// Presigning is local; no network call is made
	assert.True(t, strings.Contains(url, "fundraisers/abc/cover/x.jpg"))
	assert.True(t, strings.Contains(url, "X-Amz-Signature"))
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
}

func TestS3ObjectStorage_GenerateUploadURL_EmptyKey(t *testing.T) {
	storage, err := NewS3ObjectStorage(validStorageConfig())
	require.NoError(t, err)

	_, _, err = storage.GenerateUploadURL(context.Background(), "", "image/jpeg", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage key is required")
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	storage, err := NewS3ObjectStorage(validStorageConfig())
	require.NoError(t, err)

	url, _, err := storage.GenerateDownloadURL(context.Background(),
		"fundraisers/abc/documents/voucher.pdf", 0)
	require.NoError(t, err)

	assert.True(t, strings.Contains(url, "fundraisers/abc/documents/voucher.pdf"))
	assert.True(t, strings.Contains(url, "X-Amz-Signature"))
}
