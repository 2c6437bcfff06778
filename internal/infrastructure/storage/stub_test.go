package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_GenerateUploadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, expiresAt, err := stub.GenerateUploadURL(context.Background(),
		"fundraisers/abc/cover/x.jpg", "image/jpeg", 5*time.Minute)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/upload/fundraisers/abc/cover/x.jpg"))
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, time.Second)

	_, _, err = stub.GenerateUploadURL(context.Background(), "", "image/jpeg", time.Minute)
	assert.Error(t, err)
}

func TestStubObjectStorage_GenerateDownloadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, _, err := stub.GenerateDownloadURL(context.Background(),
		"fundraisers/abc/documents/voucher.pdf", 5*time.Minute)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/download/fundraisers/abc/documents/voucher.pdf"))
}

func TestStubObjectStorage_DeleteAndExists(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	assert.NoError(t, stub.DeleteObject(ctx, "some/key"))
	assert.Error(t, stub.DeleteObject(ctx, ""))

	exists, err := stub.ObjectExists(ctx, "some/key")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = stub.ObjectExists(ctx, "")
	assert.Error(t, err)
}
