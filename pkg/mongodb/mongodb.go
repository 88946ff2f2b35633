// Package mongodb owns the MongoDB client and implements store.Store on it.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when neither a URI nor a cluster address is set
var ErrNotConfigured = errors.New("mongodb: no uri or cluster_url configured")

// Connect opens a client for cfg, pings the primary and returns a Store on
// cfg.Database. The caller owns the returned Store and must Close it.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	uri := cfg.MongoURI()
	if uri == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	logger.WithScope("mongodb").Info().
		Str("database", cfg.Database).
		Dur("timeout", timeout).
		Msg("MongoDB client connected")

	return &Store{
		client:  client,
		db:      client.Database(cfg.Database),
		timeout: timeout,
	}, nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnect: %w", err)
	}
	logger.WithScope("mongodb").Info().Msg("MongoDB client disconnected")
	return nil
}
