package registry

import (
	"sort"

	"github.com/benedict-erwin/manufacture-online/http/handler"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Deps is what every route setup receives
type Deps struct {
	Handler     *handler.Handler
	RequireAuth echo.MiddlewareFunc
}

type SetupFunc func(g *echo.Group, d *Deps)

var prefixRegistry = make(map[string][]SetupFunc)

// Register adds a route setup under prefix; "" mounts at the root
func Register(prefix string, setup SetupFunc) {
	prefixRegistry[prefix] = append(prefixRegistry[prefix], setup)
}

// SetupAllRoutes applies all registered routes
func SetupAllRoutes(e *echo.Echo, d *Deps) {
	log := logger.WithScope("SetupAllRoutes")

	if len(prefixRegistry) == 0 {
		log.Warn().Msg("No routes registered in prefixRegistry")
		return
	}

	prefixes := make([]string, 0, len(prefixRegistry))
	for prefix := range prefixRegistry {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		setups := prefixRegistry[prefix]
		log.Debug().Str("prefix", "/"+prefix).Int("routes", len(setups)).Msg("Setting up route group")
		g := e.Group("")
		if prefix != "" {
			g = e.Group("/" + prefix)
		}
		for _, setup := range setups {
			setup(g, d)
		}
	}
}
