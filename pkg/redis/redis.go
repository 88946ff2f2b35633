package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 10 * time.Second

// ErrNotInitialized is returned by Health before Init succeeded
var ErrNotInitialized = errors.New("redis client not initialized")

var (
	mainClient *redis.Client
	mu         sync.RWMutex
)

// NewClient builds a single-node client for cfg using database db; a
// non-positive poolSize keeps the default of 10
func NewClient(cfg config.RedisConfig, db, poolSize int) *redis.Client {
	if poolSize <= 0 {
		poolSize = 10
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           db,
		DialTimeout:  defaultTimeout,
		ReadTimeout:  defaultTimeout / 2,
		WriteTimeout: defaultTimeout / 2,
		PoolSize:     poolSize,
		PoolTimeout:  3 * defaultTimeout,
	})
}

// Init connects the shared client and pings it once
func Init(cfg config.RedisConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("invalid Redis configuration: host not specified")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid Redis configuration: port %d", cfg.Port)
	}

	client := NewClient(cfg, cfg.DB, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	mu.Lock()
	mainClient = client
	mu.Unlock()

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("db", cfg.DB).
		Msg("Redis client initialized successfully")
	return nil
}

// GetClient returns the shared client, nil before Init
func GetClient() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return mainClient
}

// Health pings the shared client
func Health(ctx context.Context) error {
	client := GetClient()
	if client == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// Close closes the shared client
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if mainClient != nil {
		err := mainClient.Close()
		mainClient = nil
		return err
	}
	return nil
}
