package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appgiving "github.com/madadgar/backend/internal/application/giving"
	"github.com/redis/go-redis/v9"
)

// defaultIdempotencyTTL bounds how long a donation intake key is remembered.
// A retry after this window records a new donation.
const defaultIdempotencyTTL = 24 * time.Hour

// RedisIdempotencyStore implements IdempotencyStore using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share intake state.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisIdempotencyStore creates a new Redis-based idempotency store
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: "donation:idempotency:",
		ttl:       defaultIdempotencyTTL,
	}, nil
}

// NewRedisIdempotencyStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = "donation:idempotency:"
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       defaultIdempotencyTTL,
	}
}

// Get returns the donation recorded under the key, if any
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (uuid.UUID, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	donationID, err := uuid.Parse(value)
	if err != nil {
		// A corrupt entry must not block intake; treat it as unseen.
		return uuid.Nil, false, nil
	}
	return donationID, true, nil
}

// Set records the donation produced by the key. SETNX keeps the first
// recorded donation if two retries race.
func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, donationID uuid.UUID) error {
	if err := s.client.SetNX(ctx, s.keyPrefix+key, donationID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisIdempotencyStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisIdempotencyStore implements IdempotencyStore
var _ appgiving.IdempotencyStore = (*RedisIdempotencyStore)(nil)
