package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Get(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns miss for unknown key", func(t *testing.T) {
		id, found, err := store.Get(ctx, "unknown-key")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("returns recorded donation for known key", func(t *testing.T) {
		donationID := uuid.New()
		require.NoError(t, store.Set(ctx, "key-1", donationID))

		id, found, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, donationID, id)
	})

	t.Run("treats expired entry as miss", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		store.ttl = 10 * time.Millisecond

		require.NoError(t, store.Set(ctx, "key-expiring", uuid.New()))
		time.Sleep(20 * time.Millisecond)

		_, found, err := store.Get(ctx, "key-expiring")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestInMemoryIdempotencyStore_Set(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("first recorded donation wins", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()

		require.NoError(t, store.Set(ctx, "key-race", first))
		require.NoError(t, store.Set(ctx, "key-race", second))

		id, found, err := store.Get(ctx, "key-race")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, first, id)
	})

	t.Run("expired slot can be re-recorded", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		store.ttl = 10 * time.Millisecond

		first := uuid.New()
		require.NoError(t, store.Set(ctx, "key-rewrite", first))
		time.Sleep(20 * time.Millisecond)

		second := uuid.New()
		require.NoError(t, store.Set(ctx, "key-rewrite", second))

		id, found, err := store.Get(ctx, "key-rewrite")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, second, id)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	store.ttl = 10 * time.Millisecond

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key-a", uuid.New()))
	require.NoError(t, store.Set(ctx, "key-b", uuid.New()))
	assert.Equal(t, 2, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 0, store.Size())
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	// Close is safe to call twice.
	require.NoError(t, store.Close())
}
