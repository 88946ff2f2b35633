package asynq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// ErrClientUnavailable is returned by DispatchJob before InitClient
var ErrClientUnavailable = errors.New("queue client not available")

var client *asynq.Client

// InitClient initializes the Asynq Redis client
func InitClient(cfg *config.Config) {
	client = asynq.NewClient(redisOpt(cfg))
	logger.Info().
		Str("host", cfg.Redis.Host).
		Int("port", cfg.Redis.Port).
		Int("db", cfg.Asynq.DB).
		Msg("Asynq client initialized")
}

// GetClient returns the current Asynq client instance
func GetClient() *asynq.Client {
	return client
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Asynq.DB,
	}
}

// DispatchJob enqueues payload; a duplicate task id is not an error
func DispatchJob(ctx context.Context, payload *Payload) error {
	if payload == nil {
		return fmt.Errorf("payload cannot be nil")
	}

	log := logger.WithScope("DispatchJob")

	c := GetClient()
	if c == nil {
		return ErrClientUnavailable
	}

	data, err := json.Marshal(payload.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", payload.TaskType, err)
	}

	queue := payload.Queue
	if queue == "" {
		queue = constants.QueueDefault
	}

	opts := []asynq.Option{asynq.Queue(queue), asynq.MaxRetry(5)}
	if payload.TaskId != "" {
		opts = append(opts, asynq.TaskID(payload.TaskId), asynq.Unique(5*time.Minute))
	}

	_, err = c.EnqueueContext(ctx, asynq.NewTask(payload.TaskType, data), opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Warn().
				Str("taskId", payload.TaskId).
				Str("taskType", payload.TaskType).
				Msg("Duplicate task ignored - already in queue")
			return nil
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("taskId", payload.TaskId).
		Str("taskType", payload.TaskType).
		Str("queue", queue).
		Msg("Task enqueued successfully")
	return nil
}

// CloseClient closes the Asynq client connection
func CloseClient() {
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Asynq client")
		} else {
			logger.Info().Msg("Asynq client closed")
		}
		client = nil
	}
}
