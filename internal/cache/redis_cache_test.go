package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisBlobStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBlobStore(client, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestRedisBlobStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	key := repositories.SessionKey("s1")

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)

	require.NoError(t, store.Set(ctx, key, []byte(`{"id":"s1"}`), 0))
	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1"}`, string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)
}

func TestRedisBlobStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	key := repositories.HandoffKey("abc")

	require.NoError(t, store.Set(ctx, key, []byte(`{"hasApis":"most"}`), time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(time.Hour + time.Second)

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)
}

func TestRedisBlobStore_DeletePattern(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Set(ctx, repositories.HandoffKey("a"), []byte(`{}`), 0))
	require.NoError(t, store.Set(ctx, repositories.HandoffKey("b"), []byte(`{}`), 0))
	require.NoError(t, store.Set(ctx, repositories.SessionKey("s1"), []byte(`{}`), 0))

	deleted, err := store.DeletePattern(ctx, "quickcheck:handoff:*")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.True(t, mr.Exists(repositories.SessionKey("s1")))
}

func TestRedisBlobStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrBlobNotFound)
}
