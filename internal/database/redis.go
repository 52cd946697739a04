package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// NewRedisClient creates a new Redis client
func NewRedisClient(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Use Redis URL if provided (for production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("successfully connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}

// RedisRepository keeps the inventory under a single Redis key
type RedisRepository struct {
	client *redis.Client
	key    string
}

var _ inventory.Repository = (*RedisRepository)(nil)

// NewRedisRepository creates a repository stored at "<prefix>:<slot>"
func NewRedisRepository(client *redis.Client, prefix, slot string) *RedisRepository {
	key := slot
	if prefix != "" {
		key = prefix + ":" + slot
	}
	return &RedisRepository{client: client, key: key}
}

// Key returns the Redis key holding the inventory
func (r *RedisRepository) Key() string {
	return r.key
}

// Load reads the key; a missing key is an empty inventory
func (r *RedisRepository) Load(ctx context.Context) ([]models.FoodItem, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.FoodItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	return decodeItems(data)
}

// Save overwrites the key with the full collection
func (r *RedisRepository) Save(ctx context.Context, items []models.FoodItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}
