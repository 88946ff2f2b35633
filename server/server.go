package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/http/middleware"
	"github.com/benedict-erwin/manufacture-online/http/registry"
	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/services/payment"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Closer releases a resource during shutdown
type Closer func(ctx context.Context) error

// New builds the echo instance with middleware, error handler and every
// registered route
func New(cfg *config.Config, deps *registry.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = response.JSONSerializer{}
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
	}))
	e.Use(middleware.Logger)

	registry.SetupAllRoutes(e, deps)
	return e
}

// ErrorHandler renders handler errors as {"message": ...}. Echo errors keep
// their status, payment gateway failures are 502 and anything else is 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := ""

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		if msg, ok := he.Message.(string); ok && msg != http.StatusText(he.Code) {
			message = msg
		}
	case errors.Is(err, payment.ErrGateway):
		status = http.StatusBadGateway
	}
	if message == "" {
		message = constants.GetErrorMessage(status)
	}

	log := logger.WithScope("HTTPErrorHandler")
	ev := log.Debug()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Int("status", status).
		Str("path", c.Request().URL.Path).
		Str("request-id", constants.GetRequestID(c)).
		Msg("Request failed")

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = response.Message(c, status, message)
}

// Start serves e on listener, or on addr when listener is nil, until SIGINT
// or SIGTERM. It then drains in-flight requests and runs closers in order.
func Start(e *echo.Echo, addr string, listener net.Listener, closers ...Closer) error {
	log := logger.WithScope("startServer")

	if listener != nil {
		e.Listener = listener
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("routes", len(e.Routes())).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		log.Error().Err(err).Msg("Server failed to start")
		runClosers(closers)
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		runClosers(closers)
		return err
	}

	runClosers(closers)
	log.Info().Msg("Server gracefully stopped")
	return nil
}

func runClosers(closers []Closer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, closeFn := range closers {
		if err := closeFn(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to close resource")
		}
	}
}
