package cmd

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/http/handler"
	"github.com/benedict-erwin/manufacture-online/http/middleware"
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/benedict-erwin/manufacture-online/internal/entities/order"
	"github.com/benedict-erwin/manufacture-online/internal/services/health"
	"github.com/benedict-erwin/manufacture-online/internal/services/payment"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	asynqPkg "github.com/benedict-erwin/manufacture-online/pkg/asynq"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/mongodb"
	"github.com/benedict-erwin/manufacture-online/pkg/redis"
	"github.com/benedict-erwin/manufacture-online/pkg/stripe"
	"github.com/benedict-erwin/manufacture-online/server"
	"github.com/spf13/cobra"
)

var devMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP Server",
	Long:  `Starts the storefront HTTP server (run under overseer for zero-downtime restarts)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), false)
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Start HTTP Server without overseer",
	Long:  `Starts the storefront HTTP server in the foreground, optionally on an in-memory store`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), devMemory)
	},
}

func init() {
	devCmd.Flags().BoolVar(&devMemory, "memory", false, "use an in-memory store instead of MongoDB")
}

func runServer(ctx context.Context, memory bool) error {
	cfg := config.Get()

	deps, closers, err := buildDeps(ctx, cfg, memory)
	if err != nil {
		return err
	}

	e := server.New(cfg, deps)
	return server.Start(e, fmt.Sprintf(":%d", cfg.App.Port), serveListener, closers...)
}

// buildDeps connects the store and optional queue, then wires the handler.
// The returned closers release what was opened, in order.
func buildDeps(ctx context.Context, cfg *config.Config, memory bool) (*registry.Deps, []server.Closer, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.WithScope("buildDeps")

	tokens, err := newTokenService(cfg)
	if err != nil {
		return nil, nil, err
	}

	var (
		st      store.Store
		closers []server.Closer
	)
	if memory {
		st = store.NewMemory()
		log.Warn().Msg("Using in-memory store, data is lost on exit")
	} else {
		mongoStore, err := mongodb.Connect(ctx, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		st = mongoStore
		closers = append(closers, mongoStore.Close)
		if err := mongoStore.EnsureUniqueIndex(ctx, order.Collection, order.FieldEmail, order.FieldUsername); err != nil {
			log.Warn().Err(err).Msg("Orders index not created, concurrent purchases may split a purchaser's orders")
		}
	}

	checker := health.NewChecker(cfg.App.Version).Register("mongodb", st.Ping)

	var dispatch handler.Dispatcher
	checker.Register("redis", nil)
	if cfg.Redis.Enabled {
		if err := redis.Init(cfg.Redis); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, orders are marked paid inline")
		} else {
			asynqPkg.InitClient(cfg)
			dispatch = asynqPkg.DispatchJob
			checker.Register("redis", redis.Health)
			closers = append(closers, func(context.Context) error {
				asynqPkg.CloseClient()
				return redis.Close()
			})
		}
	}

	var gateway payment.Gateway
	if sc, err := stripe.New(cfg.Stripe); err != nil {
		log.Warn().Err(err).Msg("Stripe not configured, payment intents will fail")
	} else {
		gateway = sc
	}

	h := handler.New(handler.Config{
		Store:     st,
		Tokens:    tokens,
		Payments:  payment.NewService(gateway, cfg.Stripe.Currency),
		Dispatch:  dispatch,
		AdminRole: cfg.Auth.AdminRole,
		Health:    checker,
	})

	return &registry.Deps{
		Handler:     h,
		RequireAuth: middleware.JWTAuthMiddleware(tokens),
	}, closers, nil
}
