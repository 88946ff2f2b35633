package asynq

import (
	"context"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/redis"
	"github.com/hibiken/asynq"
	goredis "github.com/redis/go-redis/v9"
)

var (
	server            *asynq.Server
	serverRedisClient *goredis.Client
)

// InitServer creates the Asynq server on its own pooled Redis connection
func InitServer(cfg *config.Config) *asynq.Server {
	log := logger.WithScope("InitServer")

	concurrency := cfg.Asynq.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	serverRedisClient = redis.NewClient(cfg.Redis, cfg.Asynq.DB, cfg.Asynq.PoolSize)

	queues := constants.QueueWeights()
	server = asynq.NewServerFromRedisClient(
		serverRedisClient,
		asynq.Config{
			Concurrency:     concurrency,
			Queues:          queues,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Bytes("payload", task.Payload()).
					Msg("Task processing failed")
			}),
		},
	)

	log.Info().
		Int("concurrency", concurrency).
		Interface("queues", queues).
		Int("db", cfg.Asynq.DB).
		Msg("Asynq server initialized")
	return server
}

// CloseServer shuts the server down and closes its Redis connection
func CloseServer() {
	if server != nil {
		server.Shutdown()
		logger.Info().Msg("Asynq server shut down")
		server = nil
	}

	if serverRedisClient != nil {
		if err := serverRedisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close server Redis client")
		}
		serverRedisClient = nil
	}
}
