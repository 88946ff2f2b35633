package handler

import (
	"net/http"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/entities/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

type cancelRequest struct {
	ID string `json:"_id"`
}

// Purchase appends the posted order to the purchaser's document, creating it
// on first purchase
func (h *Handler) Purchase(c echo.Context) error {
	var body store.Document
	if err := bindBody(c, &body); err != nil {
		return err
	}

	key, item := order.SplitPurchase(body)
	if err := h.store.PushUpsert(c.Request().Context(), order.Collection, key, order.FieldItems, item); err != nil {
		return err
	}
	return response.Message(c, http.StatusOK, constants.MsgPurchaseSuccessful)
}

// Orders lists order documents matching the query mapping
func (h *Handler) Orders(c echo.Context) error {
	docs, err := h.store.Find(c.Request().Context(), order.Collection, store.QueryFilter(c.QueryParams()))
	if err != nil {
		return err
	}
	return response.OK(c, docs)
}

// Order returns the order document with the queried _id, or null
func (h *Handler) Order(c echo.Context) error {
	filter, err := idFilter(c.QueryParam("_id"))
	if err != nil {
		return err
	}

	doc, err := h.store.FindOne(c.Request().Context(), order.Collection, filter)
	if err != nil {
		return err
	}
	return response.OK(c, doc)
}

// CancelOrder deletes the order whose _id is in the body. Deleting an
// absent order still succeeds.
func (h *Handler) CancelOrder(c echo.Context) error {
	var req cancelRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	filter, err := idFilter(req.ID)
	if err != nil {
		return err
	}

	if _, err := h.store.DeleteOne(c.Request().Context(), order.Collection, filter); err != nil {
		return err
	}
	return response.Message(c, http.StatusOK, constants.MsgOrderDeleted)
}
