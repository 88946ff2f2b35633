package handler

import (
	"net/http"

	"github.com/benedict-erwin/manufacture-online/internal/services/health"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

// HealthLive returns basic liveness check
func (h *Handler) HealthLive(c echo.Context) error {
	return response.OK(c, h.health.Live())
}

// HealthReady returns 503 while any dependency is unhealthy
func (h *Handler) HealthReady(c echo.Context) error {
	status := h.health.Ready(c.Request().Context())
	code := http.StatusOK
	if status.Status != health.StatusReady {
		code = http.StatusServiceUnavailable
	}
	return response.JSON(c, code, status)
}
