package jobs

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/jobs/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/hibiken/asynq"
)

// JobRegistration holds job metadata for registration and listing
type JobRegistration struct {
	TaskType string                                   `json:"task_type"`
	Handler  func(context.Context, *asynq.Task) error `json:"-"`
	Queue    string                                   `json:"queue"`
}

// RegisterHandlers registers every job handler on mux, when given, and
// returns the job metadata
func RegisterHandlers(mux *asynq.ServeMux, st store.Store) ([]JobRegistration, error) {
	jobs := []JobRegistration{
		// Critical
		{
			TaskType: order.TypeOrderMarkPaid,
			Handler:  order.NewMarkPaidHandler(st),
			Queue:    constants.QueueCritical,
		},
	}

	for _, job := range jobs {
		if !constants.IsValidQueue(job.Queue) {
			return nil, fmt.Errorf("invalid queue '%s' for job '%s'. Valid queues: %v",
				job.Queue, job.TaskType, constants.GetAllQueues())
		}
	}

	if mux != nil {
		for _, job := range jobs {
			mux.HandleFunc(job.TaskType, job.Handler)
		}
	}
	return jobs, nil
}
