package middleware

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/utils"
	"github.com/labstack/echo/v4"
)

// Logger logs every request with status and latency, and makes sure each
// request carries a request id (taken from headers or generated)
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := utils.Now()

		reqID := constants.GetRequestIDFromHeaders(c)
		if reqID == "" {
			reqID = generateRequestID()
		}
		c.Set(constants.RequestIDKey, reqID)
		c.Response().Header().Set(constants.HeaderRequestID, reqID)

		err := next(c)

		status := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}

		logger.WithScope("accessLog").Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", time.Since(start).Microseconds()).
			Str("request-id", reqID).
			Msg("HTTP Request")

		return err
	}
}

// generateRequestID creates a request id from the unix time and a random suffix
func generateRequestID() string {
	return fmt.Sprintf("req-%d-%08x", utils.Now().Unix(), rand.Uint32())
}
