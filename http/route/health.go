package route

import (
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/labstack/echo/v4"
)

func init() {
	registry.Register("health", func(g *echo.Group, d *registry.Deps) {
		g.GET("/live", d.Handler.HealthLive)
		g.GET("/ready", d.Handler.HealthReady)
	})
}
