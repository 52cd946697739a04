// Command migrate copies the inventory slot from one storage driver to
// another, for example when moving from SQLite to PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/logger"
)

func main() {
	// Parse command line flags
	from := flag.String("from", config.DriverSQLite, "source storage driver")
	to := flag.String("to", config.DriverPostgres, "destination storage driver")
	dryRun := flag.Bool("dry-run", false, "read the source without writing the destination")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(zl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, *from, *to, *dryRun, zl); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, from, to string, dryRun bool, zl *zap.Logger) error {
	srcCfg, err := withDriver(cfg, from)
	if err != nil {
		return err
	}
	dstCfg, err := withDriver(cfg, to)
	if err != nil {
		return err
	}

	src, closeSrc, err := database.NewRepository(ctx, srcCfg, zl)
	if err != nil {
		return err
	}
	defer closeSrc()

	if dryRun {
		_, err := copySlot(ctx, src, nil, zl)
		return err
	}

	dst, closeDst, err := database.NewRepository(ctx, dstCfg, zl)
	if err != nil {
		return err
	}
	defer closeDst()

	n, err := copySlot(ctx, src, dst, zl)
	if err != nil {
		return err
	}
	zl.Info("inventory copied", zap.String("from", from), zap.String("to", to), zap.Int("items", n))
	return nil
}

// copySlot loads src and saves it to dst. A nil dst only reads.
func copySlot(ctx context.Context, src, dst inventory.Repository, zl *zap.Logger) (int, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	zl.Info("loaded source inventory", zap.Int("items", len(items)))
	if dst == nil {
		return len(items), nil
	}
	if err := dst.Save(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func withDriver(cfg *config.Config, driver string) (*config.Config, error) {
	out := *cfg
	out.StorageDriver = driver
	if err := config.ValidateConfig(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
