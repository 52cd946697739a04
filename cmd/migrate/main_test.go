package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Env = config.Test
	cfg.SQLitePath = filepath.Join(t.TempDir(), "freshkeep.db")
	return cfg
}

func TestCopySlot(t *testing.T) {
	ctx := context.Background()
	src, closeSrc, err := database.NewRepository(ctx, sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer closeSrc()

	added := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	items := []models.FoodItem{{
		ID:         "x",
		Name:       "Rice",
		FoodType:   models.FoodTypeDry,
		Packaging:  models.PackagingSealed,
		AddedDate:  added,
		ExpiryDate: added.AddDate(1, 0, 0),
	}}
	require.NoError(t, src.Save(ctx, items))

	dst := inventory.NewMemoryRepository()
	n, err := copySlot(ctx, src, dst, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := dst.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	n, err = copySlot(ctx, src, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBPassword = "unused"
	assert.NoError(t, run(context.Background(), cfg, config.DriverSQLite, config.DriverMemory, false, zap.NewNop()))
	// A dry run never connects to the destination
	assert.NoError(t, run(context.Background(), cfg, config.DriverSQLite, config.DriverPostgres, true, zap.NewNop()))
}

func TestRun_RejectsIncompleteDestination(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.S3Bucket = ""

	err := run(context.Background(), cfg, config.DriverSQLite, config.DriverS3, false, zap.NewNop())
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")
}
