// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wneessen/weathermap/internal/logger"
	"github.com/wneessen/weathermap/internal/view"
)

const (
	SessionCookie   = "weathermap_session"
	ShutdownTimeout = time.Second * 10
)

//go:embed web
var webFS embed.FS

type Server struct {
	echo       *echo.Echo
	controller *view.Controller
	sessions   *SessionStore
	log        *logger.Logger
	sessionTTL time.Duration
}

func New(controller *view.Controller, sessions *SessionStore, log *logger.Logger, sessionTTL time.Duration) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:       e,
		controller: controller,
		sessions:   sessions,
		log:        log,
		sessionTTL: sessionTTL,
	}
	srv.middleware()
	srv.routes()
	return srv
}

// ServeHTTP makes the server usable as a http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves HTTP on addr until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	errs := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", slog.String("listen", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

func (s *Server) middleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.log.Error("request failed", append(attrs, logger.Err(v.Error))...)
				return nil
			}
			s.log.Debug("request completed", attrs...)
			return nil
		},
	}))
}

func (s *Server) routes() {
	static := echo.MustSubFS(webFS, "web/static")
	s.echo.StaticFS("/static", static)
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/healthz", s.handleHealth)

	api := s.echo.Group("/api")
	api.GET("/state", s.handleState)
	api.GET("/search", s.handleSearch)
	api.GET("/point", s.handlePoint)
	api.POST("/theme", s.handleTheme)
}
