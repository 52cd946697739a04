// Package testdb starts throwaway databases for integration tests
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
)

// TestDB wraps a test database instance
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if td.DB != nil {
		_ = database.Close(td.DB)
	}
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// SQLiteConfig returns a test configuration backed by an in-memory sqlite
// database
func SQLiteConfig() *config.Config {
	cfg := config.Default()
	cfg.Env = config.Test
	cfg.StorageDriver = config.DriverSQLite
	cfg.SQLitePath = ":memory:"
	return cfg
}

// SetupSQLite opens a migrated in-memory sqlite database
func SetupSQLite(t *testing.T) *TestDB {
	t.Helper()

	cfg := SQLiteConfig()
	db, err := database.New(cfg, zap.NewNop())
	require.NoError(t, err)

	testDB := &TestDB{DB: db, Config: cfg}
	t.Cleanup(func() {
		_ = testDB.Close()
	})
	return testDB
}

// SetupPostgres starts a postgres container and opens a migrated database in
// it. The test is skipped when no container runtime is available.
func SetupPostgres(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "freshkeep_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})

	// Get container host and port
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Env = config.Test
	cfg.StorageDriver = config.DriverPostgres
	cfg.DBHost = host
	cfg.DBPort = port.Port()
	cfg.DBUser = "test"
	cfg.DBPassword = "test"
	cfg.DBName = "freshkeep_test"
	testDB.Config = cfg

	db, err := database.New(cfg, zap.NewNop())
	require.NoError(t, err)
	testDB.DB = db

	return testDB
}
