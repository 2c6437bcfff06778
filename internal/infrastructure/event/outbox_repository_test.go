package event

import (
	"context"
	"testing"
	"time"

	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&outboxEntryModel{}))
	return db
}

func newTestEntry(t *testing.T) *shared.OutboxEntry {
	t.Helper()
	event := newDonationEvent()
	payload, err := NewEventSerializer().Serialize(event)
	require.NoError(t, err)
	return shared.NewOutboxEntry(event, payload)
}

func TestGormOutboxRepository_SaveAndFindPending(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	entry := newTestEntry(t)
	require.NoError(t, repo.Save(ctx, entry))

	pending, err := repo.FindPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entry.EventID, pending[0].EventID)
	assert.Equal(t, entry.EventType, pending[0].EventType)
	assert.Equal(t, shared.OutboxStatusPending, pending[0].Status)
}

func TestGormOutboxRepository_SaveEmpty(t *testing.T) {
	repo := NewGormOutboxRepository(setupOutboxTestDB(t))
	assert.NoError(t, repo.Save(context.Background()))
}

func TestGormOutboxRepository_FindPendingRespectsLimit(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newTestEntry(t)))
	}

	pending, err := repo.FindPending(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestGormOutboxRepository_FindRetryable(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	due := newTestEntry(t)
	due.Status = shared.OutboxStatusFailed
	past := time.Now().Add(-time.Minute)
	due.NextRetryAt = &past

	notYet := newTestEntry(t)
	notYet.Status = shared.OutboxStatusFailed
	future := time.Now().Add(time.Hour)
	notYet.NextRetryAt = &future

	require.NoError(t, repo.Save(ctx, due, notYet))

	retryable, err := repo.FindRetryable(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, retryable, 1)
	assert.Equal(t, due.EventID, retryable[0].EventID)
}

func TestGormOutboxRepository_Update(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	entry := newTestEntry(t)
	require.NoError(t, repo.Save(ctx, entry))

	entry.MarkSent()
	require.NoError(t, repo.Update(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusSent, found.Status)
	assert.NotNil(t, found.ProcessedAt)
}

func TestGormOutboxRepository_DeleteOlderThan(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	old := newTestEntry(t)
	old.Status = shared.OutboxStatusSent
	oldTime := time.Now().Add(-48 * time.Hour)
	old.ProcessedAt = &oldTime

	recent := newTestEntry(t)
	recent.MarkSent()

	stillPending := newTestEntry(t)

	require.NoError(t, repo.Save(ctx, old, recent, stillPending))

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusSent])
	assert.Equal(t, int64(1), counts[shared.OutboxStatusPending])
}

func TestGormOutboxRepository_FindDead(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewGormOutboxRepository(db)
	ctx := context.Background()

	dead := newTestEntry(t)
	dead.Status = shared.OutboxStatusDead
	dead.RetryCount = 5
	dead.LastError = "collector unreachable"

	alive := newTestEntry(t)

	require.NoError(t, repo.Save(ctx, dead, alive))

	entries, total, err := repo.FindDead(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, dead.EventID, entries[0].EventID)
	assert.Equal(t, "collector unreachable", entries[0].LastError)
}
