package handler

import (
	"net/http"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/entities/payment"
	orderJob "github.com/benedict-erwin/manufacture-online/internal/jobs/order"
	orderService "github.com/benedict-erwin/manufacture-online/internal/services/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

// CreatePaymentIntent creates a card intent for the posted totalPrice
func (h *Handler) CreatePaymentIntent(c echo.Context) error {
	var req payment.IntentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	secret, err := h.payments.CreateIntent(c.Request().Context(), req.TotalPrice)
	if err != nil {
		return err
	}
	return response.OK(c, payment.IntentResponse{ClientSecret: secret})
}

// Payment saves the posted payment record, then marks its order paid
func (h *Handler) Payment(c echo.Context) error {
	var body store.Document
	if err := bindBody(c, &body); err != nil {
		return err
	}

	if _, err := h.store.InsertOne(c.Request().Context(), payment.Collection, body); err != nil {
		return err
	}

	if rec := payment.RecordFrom(body); rec.OrderID != "" {
		h.markPaid(c, rec)
	}
	return response.Message(c, http.StatusOK, constants.MsgPaymentSaved)
}

// markPaid queues the paid flag, updating inline when no queue is wired or
// the enqueue fails. Failures are logged; the payment record is already saved.
func (h *Handler) markPaid(c echo.Context, rec payment.Record) {
	log := logger.WithScope("Payment")
	rid := constants.GetRequestID(c)
	ctx := c.Request().Context()

	if h.dispatch != nil {
		job := orderJob.NewMarkPaidJob(orderJob.MarkPaidPayload{
			OrderID:       rec.OrderID,
			TransactionID: rec.TransactionID,
			RequestID:     rid,
		})
		err := h.dispatch(ctx, job)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("request-id", rid).Msg("Failed to queue mark paid job, updating inline")
	}

	if err := orderService.MarkPaid(ctx, h.store, rec.OrderID, rec.TransactionID); err != nil {
		log.Warn().
			Err(err).
			Str("order_id", rec.OrderID).
			Str("request-id", rid).
			Msg("Order not marked paid")
	}
}
