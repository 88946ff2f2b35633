package route

import (
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/labstack/echo/v4"
)

func init() {
	registry.Register("", func(g *echo.Group, d *registry.Deps) {
		h := d.Handler
		g.POST("/auth", h.Auth)
		g.POST("/signup", h.Signup)
		g.GET("/verify", h.Verify, d.RequireAuth)
		g.GET("/verify-admin", h.VerifyAdmin, d.RequireAuth)
	})
}
