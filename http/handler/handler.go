// Package handler implements the storefront HTTP endpoints.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/services/health"
	"github.com/benedict-erwin/manufacture-online/internal/services/payment"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/benedict-erwin/manufacture-online/pkg/asynq"
	"github.com/labstack/echo/v4"
)

// TokenIssuer signs access tokens for /auth
type TokenIssuer interface {
	Issue(claim map[string]any) (string, error)
}

// Dispatcher enqueues a background job
type Dispatcher func(ctx context.Context, payload *asynq.Payload) error

// Config wires a Handler. Dispatch and Health are optional.
type Config struct {
	Store     store.Store
	Tokens    TokenIssuer
	Payments  *payment.Service
	Dispatch  Dispatcher
	AdminRole string
	Health    *health.Checker
}

// Handler serves every route; it shares nothing between requests except its
// injected collaborators
type Handler struct {
	store     store.Store
	tokens    TokenIssuer
	payments  *payment.Service
	dispatch  Dispatcher
	adminRole string
	health    *health.Checker
}

// New returns a Handler for cfg
func New(cfg Config) *Handler {
	checker := cfg.Health
	if checker == nil {
		checker = health.NewChecker("").Register("store", cfg.Store.Ping)
	}
	return &Handler{
		store:     cfg.Store,
		tokens:    cfg.Tokens,
		payments:  cfg.Payments,
		dispatch:  cfg.Dispatch,
		adminRole: cfg.AdminRole,
		health:    checker,
	}
}

// bindBody decodes a JSON request body only; query and path values never
// leak into the document. A body sent with any other media type is ignored
// and dst keeps its zero value, the same as an empty body.
func bindBody(c echo.Context, dst any) error {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return nil
	}
	if err := new(echo.DefaultBinder).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, constants.MsgInvalidBody).SetInternal(err)
	}
	return nil
}

// idFilter parses raw as an ObjectID filter or fails with 400
func idFilter(raw string) (store.Filter, error) {
	filter, err := store.IDFilter(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, constants.MsgInvalidID).SetInternal(err)
	}
	return filter, nil
}
