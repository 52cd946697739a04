package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Env = config.Test
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = "0"
	cfg.StorageDriver = config.DriverSQLite
	cfg.SQLitePath = ":memory:"
	return cfg
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body := `{"name":"Bread","foodType":"bakery","temperature":20,"humidity":40,"packaging":"paper"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/foods", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, srv.Store().Len())

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `freshkeep_inventory_mutations_total{op="add",result="ok"} 1`)
}

func TestNew_RateLimitFallsBackToMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.StorageDriver = config.DriverMemory
	cfg.RateLimitWrites = 1

	srv, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	send := func() int {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/foods/x", nil))
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "tape"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.StorageDriver = config.DriverMemory
	srv, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Give the listener a moment before stopping it
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
