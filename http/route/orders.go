package route

import (
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/labstack/echo/v4"
)

func init() {
	registry.Register("", func(g *echo.Group, d *registry.Deps) {
		h := d.Handler
		g.PUT("/purchase", h.Purchase, d.RequireAuth)
		g.GET("/orders", h.Orders, d.RequireAuth)
		g.GET("/order", h.Order, d.RequireAuth)
		g.DELETE("/cancel-order", h.CancelOrder, d.RequireAuth)
	})
}
