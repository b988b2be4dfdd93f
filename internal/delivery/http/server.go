// Package http serves the marketplace API over a single echo server.
// The server is registered as a delivery in the fx graph; fx starts it
// through Serve and drains it on shutdown.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"truecraft/config"
	"truecraft/internal/delivery"
	"truecraft/internal/delivery/http/router"
	"truecraft/internal/delivery/http/validator"
	"truecraft/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer assembles the echo instance: request logging, panic
// recovery, CORS, tag-driven request validation and the route table.
// Connection timeouts come from configuration so a stalled client
// cannot hold a connection open indefinitely.
func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()
	echoServer.Use(slogecho.New(params.Logger), middleware.Recover(), middleware.CORS())

	timeouts := params.Config.HTTP.Timeouts
	echoServer.Server.ReadTimeout = timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = timeouts.IdleTimeout

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	srv := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}
	params.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve blocks on the listener until the server is shut down.
func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("http server listening", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "http server stopped")
	}

	return nil
}

// stop drains in-flight requests, bounded by the lifecycle timeout.
func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
