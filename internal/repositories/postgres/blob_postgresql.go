package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobPostgreSQL stores session and hand-off documents in the assessment_blobs table.
type BlobPostgreSQL struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlobPostgreSQL(db *gorm.DB) *BlobPostgreSQL {
	return &BlobPostgreSQL{db: db, now: time.Now}
}

// AutoMigrate creates or updates the blob table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.StoredBlob{})
}

func (b *BlobPostgreSQL) Get(ctx context.Context, key string) ([]byte, error) {
	var blob models.StoredBlob
	err := b.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", b.now()).
		First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return []byte(blob.Data), nil
}

func (b *BlobPostgreSQL) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	blob := models.StoredBlob{
		Key:  key,
		Data: datatypes.JSON(data),
	}
	if ttl > 0 {
		expiresAt := b.now().Add(ttl)
		blob.ExpiresAt = &expiresAt
	}

	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}
	return nil
}

func (b *BlobPostgreSQL) Delete(ctx context.Context, key string) error {
	if err := b.db.WithContext(ctx).Where("key = ?", key).Delete(&models.StoredBlob{}).Error; err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// PurgeExpired removes expired rows and returns how many were deleted.
func (b *BlobPostgreSQL) PurgeExpired(ctx context.Context) (int64, error) {
	result := b.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", b.now()).
		Delete(&models.StoredBlob{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge expired blobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
