package handler

import (
	"github.com/benedict-erwin/manufacture-online/internal/entities/product"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

// Products lists the whole catalogue
func (h *Handler) Products(c echo.Context) error {
	docs, err := h.store.Find(c.Request().Context(), product.Collection, store.Filter{})
	if err != nil {
		return err
	}
	return response.OK(c, docs)
}

// Product returns one product by path id, or null
func (h *Handler) Product(c echo.Context) error {
	filter, err := idFilter(c.Param("_id"))
	if err != nil {
		return err
	}

	doc, err := h.store.FindOne(c.Request().Context(), product.Collection, filter)
	if err != nil {
		return err
	}
	return response.OK(c, doc)
}
