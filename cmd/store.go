package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/readiness-assessment/internal/cache"
	"github.com/SAP-F-2025/readiness-assessment/internal/config"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories/postgres"
	"github.com/SAP-F-2025/readiness-assessment/pkg"
	"gorm.io/gorm"
)

// storage is the blob store selected by STORAGE_BACKEND plus the handles behind it.
type storage struct {
	store repositories.BlobStore
	redis *cache.RedisBlobStore
	blobs *postgres.BlobPostgreSQL
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := cache.NewRedisBlobStore(client, logger)
		logger.Info("Using redis storage")
		return &storage{
			store: store,
			redis: store,
			close: func() { client.Close() },
		}, nil

	case config.StoragePostgres:
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		blobs := postgres.NewBlobPostgreSQL(db)
		logger.Info("Using postgres storage")
		return &storage{
			store: blobs,
			blobs: blobs,
			close: func() { closeDB(db, logger) },
		}, nil

	default:
		logger.Warn("Using in-memory storage, sessions are lost on restart")
		return &storage{
			store: repositories.NewMemoryBlobStore(),
			close: func() {},
		}, nil
	}
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get sql.DB", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}
