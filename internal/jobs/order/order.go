package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	orderService "github.com/benedict-erwin/manufacture-online/internal/services/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	asynqPkg "github.com/benedict-erwin/manufacture-online/pkg/asynq"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// TypeOrderMarkPaid flags an order paid after its payment record was saved
const TypeOrderMarkPaid = "order:mark_paid"

// MarkPaidPayload is the task payload
type MarkPaidPayload struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	RequestID     string `json:"request_id"`
}

// NewMarkPaidJob builds the dispatch payload; the task id dedupes retries of
// the same transaction
func NewMarkPaidJob(p MarkPaidPayload) *asynqPkg.Payload {
	return &asynqPkg.Payload{
		TaskId:   fmt.Sprintf("mark_paid_%s_%s", p.OrderID, p.TransactionID),
		TaskType: TypeOrderMarkPaid,
		Queue:    constants.QueueCritical,
		Data:     p,
	}
}

// NewMarkPaidHandler returns the asynq handler bound to st
func NewMarkPaidHandler(st store.Store) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		log := logger.WithScope(TypeOrderMarkPaid)

		var payload MarkPaidPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal mark paid payload")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		err := orderService.MarkPaid(ctx, st, payload.OrderID, payload.TransactionID)
		if errors.Is(err, store.ErrInvalidID) || errors.Is(err, orderService.ErrNotFound) {
			log.Warn().
				Err(err).
				Str("order_id", payload.OrderID).
				Str("request_id", payload.RequestID).
				Msg("Order cannot be marked paid, dropping task")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		if err != nil {
			return err
		}

		log.Info().
			Str("order_id", payload.OrderID).
			Str("transaction_id", payload.TransactionID).
			Str("request_id", payload.RequestID).
			Msg("Order marked paid")
		return nil
	}
}
