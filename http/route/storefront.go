package route

import (
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/labstack/echo/v4"
)

func init() {
	registry.Register("", func(g *echo.Group, d *registry.Deps) {
		h := d.Handler
		g.GET("/", h.Root)
		g.GET("/products", h.Products)
		g.GET("/product/:_id", h.Product)
	})
}
