package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pricealert/pkg/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry is one key-value row.
type StorageEntry struct {
	ID uint `gorm:"primaryKey"`

	Key   string `gorm:"type:text;not null;uniqueIndex:idx_storage_key"`
	Value []byte `gorm:"type:bytea;not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

func (p *PostgresClient) Get(ctx context.Context, key string) ([]byte, error) {
	var entry StorageEntry
	err := p.DB.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, nil
}

// Put upserts the value under key.
func (p *PostgresClient) Put(ctx context.Context, key string, value []byte) error {
	entry := &StorageEntry{Key: key, Value: value}

	err := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

var _ storage.Store = (*PostgresClient)(nil)
