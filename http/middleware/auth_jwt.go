package middleware

import (
	"net/http"
	"strings"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/pkg/auth"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

// TokenVerifier is the part of the token service the middleware needs
type TokenVerifier interface {
	Verify(token string) (auth.IdentityClaim, error)
}

// JWTAuthMiddleware gates a route behind a valid access token. A missing
// Authorization header is 401; any verification failure is 403. On success
// the decoded claim is attached to the echo and request contexts.
func JWTAuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.WithScope("JWTAuthMiddleware")

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn().
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Str("request-id", constants.GetRequestID(c)).
					Msg("Missing Authorization header")
				return response.Message(c, http.StatusUnauthorized, constants.MsgUnauthorized)
			}

			claim, err := verifier.Verify(bearerToken(authHeader))
			if err != nil {
				log.Warn().
					Err(err).
					Str("cause", auth.Cause(err)).
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Str("request-id", constants.GetRequestID(c)).
					Msg("JWT verification failed")
				return response.Message(c, http.StatusForbidden, constants.MsgForbidden)
			}

			c.Set(constants.ClaimKey, claim)
			c.SetRequest(c.Request().WithContext(auth.WithClaim(c.Request().Context(), claim)))

			email, _ := claim.Email()
			log.Debug().
				Str("email", email).
				Str("path", c.Request().URL.Path).
				Str("method", c.Request().Method).
				Msg("Authentication successful")

			return next(c)
		}
	}
}

// bearerToken returns the second space-separated segment of the header.
// The scheme is not checked; a header without a space yields "".
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// GetClaim extracts the verified claim from the echo context, falling back
// to the request context
func GetClaim(c echo.Context) auth.IdentityClaim {
	if claim, ok := c.Get(constants.ClaimKey).(auth.IdentityClaim); ok {
		return claim
	}
	if claim, ok := auth.ClaimFromContext(c.Request().Context()); ok {
		return claim
	}
	return auth.IdentityClaim{}
}
