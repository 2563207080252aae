package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Integration test; needs TEST_DATABASE_URL pointing at a disposable database.
func TestBlobPostgreSQL_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if testing.Short() || dsn == "" {
		t.Skip("Skipping integration test")
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	ctx := context.Background()
	store := NewBlobPostgreSQL(db)
	key := repositories.SessionKey(uuid.NewString())
	t.Cleanup(func() { _ = store.Delete(ctx, key) })

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)

	require.NoError(t, store.Set(ctx, key, []byte(`{"currentOrdinal":6}`), time.Hour))
	require.NoError(t, store.Set(ctx, key, []byte(`{"currentOrdinal":7}`), time.Hour))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentOrdinal":7}`, string(data))

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, purged, int64(1))
}
