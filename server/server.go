// Package server hosts the HTTP server wrapping the scheduling engine.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/studyloop/studyloop/internal/profile"
	apiv1 "github.com/studyloop/studyloop/server/router/api/v1"
	"github.com/studyloop/studyloop/store"
)

// Server is the studyloop HTTP server.
type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer creates the server and registers all routes.
func NewServer(ctx context.Context, prof *profile.Profile, st *store.Store, logger *slog.Logger) (*Server, error) {
	e := echo.New()
	e.Debug = prof.IsDev()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		Secret:     prof.Secret,
		Profile:    prof,
		Store:      st,
		echoServer: e,
		logger:     logger,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service, err := apiv1.NewAPIV1Service(s.Secret, prof, st, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create api v1 service")
	}
	apiV1Service.RegisterRoutes(e)

	return s, nil
}

// Start begins serving; it returns once the listener fails or shuts down.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.logger.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	return s.echoServer.Start(address)
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if err := s.Store.Close(); err != nil {
		s.logger.Error("failed to close store", slog.String("error", err.Error()))
	}

	s.logger.Info("server shutdown")
}
