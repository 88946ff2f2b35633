package constants

import "github.com/labstack/echo/v4"

const (
	// RequestIDKey is the echo context key holding the request id
	RequestIDKey = "x-req-id"
	// ClaimKey is the echo context key holding the verified identity claim
	ClaimKey = "claim"

	// Header keys (in order of preference)
	HeaderRequestID      = "X-Request-ID"
	HeaderCorrelationID  = "X-Correlation-ID"
	HeaderRequestIDShort = "Request-ID"
)

// GetRequestIDFromHeaders extracts request ID from multiple possible headers
func GetRequestIDFromHeaders(c echo.Context) string {
	for _, h := range []string{HeaderRequestID, HeaderCorrelationID, HeaderRequestIDShort} {
		if v := c.Request().Header.Get(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID extracts request ID from Echo context
func GetRequestID(c echo.Context) string {
	rid, ok := c.Get(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return rid
}
