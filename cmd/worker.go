package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/jobs"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	asynqPkg "github.com/benedict-erwin/manufacture-online/pkg/asynq"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/mongodb"
	"github.com/hibiken/asynq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage background job workers",
	Long:  `Run the Asynq worker that settles paid orders, or list its jobs`,
}

var (
	workerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start background job worker",
		Long:  `Start Asynq worker to process background jobs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startWorker(cmd)
		},
	}

	workerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs and queue weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listJobs()
		},
	}
)

func init() {
	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerListCmd)
}

// startWorker runs the Asynq server until SIGINT or SIGTERM
func startWorker(cmd *cobra.Command) error {
	log := logger.WithScope("startWorker")
	cfg := config.Get()

	mongoStore, err := mongodb.Connect(cmd.Context(), cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("worker needs MongoDB: %w", err)
	}
	defer func() {
		if err := mongoStore.Close(cmd.Context()); err != nil {
			log.Error().Err(err).Msg("Failed to close MongoDB")
		}
	}()

	srv := asynqPkg.InitServer(cfg)
	mux := asynq.NewServeMux()
	if _, err := jobs.RegisterHandlers(mux, mongoStore); err != nil {
		return fmt.Errorf("failed to register job handlers: %w", err)
	}

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start worker server: %w", err)
	}
	log.Info().Msg("Asynq worker server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, waiting for running tasks (max 30s)...")

	asynqPkg.CloseServer()
	log.Info().Msg("Worker server stopped gracefully")
	return nil
}

// listJobs prints every registered job with its queue and weight
func listJobs() error {
	registered, err := jobs.RegisterHandlers(nil, store.NewMemory())
	if err != nil {
		return err
	}
	sort.Slice(registered, func(i, j int) bool { return registered[i].TaskType < registered[j].TaskType })

	weights := constants.QueueWeights()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Task Type", "Queue", "Weight"})
	for _, job := range registered {
		table.Append([]string{job.TaskType, job.Queue, fmt.Sprint(weights[job.Queue])})
	}
	table.Render()
	return nil
}
