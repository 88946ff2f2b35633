package route

import (
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/labstack/echo/v4"
)

func init() {
	registry.Register("", func(g *echo.Group, d *registry.Deps) {
		h := d.Handler
		g.POST("/create-payment-intent", h.CreatePaymentIntent, d.RequireAuth)
		g.POST("/payment", h.Payment, d.RequireAuth)
	})
}
