package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisBlobStore is a repositories.BlobStore backed by Redis string keys with TTL.
type RedisBlobStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisBlobStore(client *redis.Client, logger *slog.Logger) *RedisBlobStore {
	return &RedisBlobStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.ErrBlobNotFound
		}
		r.logger.Error("Redis get failed", "key", key, "error", err)
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisBlobStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Redis set failed", "key", key, "error", err)
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis delete failed", "key", key, "error", err)
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// DeletePattern removes every key matching pattern, scanning in batches.
func (r *RedisBlobStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("redis delete %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan %s: %w", pattern, err)
	}
	return deleted, nil
}
