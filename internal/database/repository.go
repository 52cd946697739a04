package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/inventory"
)

// CloseFunc releases resources held by a repository
type CloseFunc func() error

func noopClose() error { return nil }

// NewRepository builds the inventory repository selected by
// cfg.StorageDriver. The returned CloseFunc must be called on shutdown.
func NewRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (inventory.Repository, CloseFunc, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		logger.Warn("using in-memory storage; inventory is lost on restart")
		return inventory.NewMemoryRepository(), noopClose, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := New(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewSlotRepository(db, cfg.StorageSlot), func() error { return Close(db) }, nil

	case config.DriverRedis:
		client, err := NewRedisClient(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisRepository(client, cfg.RedisKeyPrefix, cfg.StorageSlot), client.Close, nil

	case config.DriverS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		logger.Info("using S3 storage", zap.String("bucket", s3cfg.BucketName))
		return NewS3Repository(s3cfg, cfg.StorageSlot), noopClose, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
