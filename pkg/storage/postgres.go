package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// blobRow is the single table the postgres driver uses. Collections stay
// whole blobs so the persistence semantics match the other drivers.
type blobRow struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (blobRow) TableName() string { return "blobs" }

// PostgresAdapter persists blobs in a key/value table via GORM.
type PostgresAdapter struct {
	db *gorm.DB
}

func NewPostgresAdapter(dsn string) (*PostgresAdapter, error) {
	if dsn == "" {
		return nil, fmt.Errorf("storage: postgres driver requires a DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&blobRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate blobs table: %w", err)
	}
	return &PostgresAdapter{db: db}, nil
}

func (p *PostgresAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	var row blobRow
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: postgres get %s: %w", key, err)
	}
	return row.Value, nil
}

func (p *PostgresAdapter) Set(ctx context.Context, key string, value []byte) error {
	row := blobRow{Key: key, Value: value, UpdatedAt: time.Now()}
	err := p.db.WithContext(ctx).Save(&row).Error
	if err != nil {
		return fmt.Errorf("storage: postgres set %s: %w", key, err)
	}
	return nil
}

func (p *PostgresAdapter) Delete(ctx context.Context, key string) error {
	err := p.db.WithContext(ctx).Delete(&blobRow{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("storage: postgres delete %s: %w", key, err)
	}
	return nil
}

func (p *PostgresAdapter) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := p.db.WithContext(ctx).Model(&blobRow{}).Order("key").Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("storage: postgres keys: %w", err)
	}
	return keys, nil
}

func (p *PostgresAdapter) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
