// Package server wires the datetime API into an echo HTTP server.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/datetimex/internal/profile"
	"github.com/hrygo/datetimex/plugin/datetime/timeout"
	apiv1 "github.com/hrygo/datetimex/server/router/api/v1"
)

type Server struct {
	Profile *profile.Profile
	Logger  *slog.Logger

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
}

func NewServer(p *profile.Profile, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())

	s := &Server{
		Profile:    p,
		Logger:     logger,
		echoServer: echoServer,
		apiV1:      apiv1.NewAPIV1Service(p, logger),
	}

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	s.apiV1.RegisterRoutes(echoServer)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Start listens on the profile's address and serves until Shutdown.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.Profile.ListenAddr())
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.Profile.ListenAddr())
	}
	return s.Serve(listener)
}

// Serve serves on listener until Shutdown. A graceful shutdown is not an error.
func (s *Server) Serve(listener net.Listener) error {
	s.echoServer.Listener = listener
	s.Logger.Info("datetimex server started",
		slog.String("addr", listener.Addr().String()),
		slog.String("mode", s.Profile.Mode),
		slog.String("version", s.Profile.Version))
	if err := s.echoServer.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones, at most
// timeout.ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeout.ShutdownTimeout)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown echo server")
	}
	snap := s.apiV1.DatetimeService.Metrics.Snapshot()
	s.Logger.Info("datetimex server stopped",
		slog.Int64("request_total", snap.RequestTotal),
		slog.Int64("request_failed", snap.RequestFailed))
	return nil
}
