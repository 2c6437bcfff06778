package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_AddAndCheck(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	err = blacklist.AddToBlacklist(ctx, "jti-1", time.Minute)
	require.NoError(t, err)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay valid
	revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_EntryExpires(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	err := blacklist.AddToBlacklist(ctx, "jti-short", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	issuedBefore := time.Now()
	time.Sleep(5 * time.Millisecond)

	err := blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	issuedAfter := time.Now()

	invalid, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalid)

	invalid, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAfter)
	require.NoError(t, err)
	assert.False(t, invalid)

	// Users without an invalidation marker are unaffected
	invalid, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalid)
}
