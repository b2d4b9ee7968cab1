// Package gallery serves a directory of images as a page of responsive,
// lazily loaded images, together with the resized variants they reference.
package gallery

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/matjam/lazyimg/internal/middleware"
	"github.com/matjam/lazyimg/internal/registry"
)

type Server struct {
	cfg  Config
	echo *echo.Echo
}

func NewServer(cfg Config) *Server {
	if cfg.Registry == nil {
		cfg.Registry = registry.New()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeEager
	}
	if cfg.Title == "" {
		cfg.Title = "lazyimg"
	}
	cfg.Display = cfg.Display.Normalize()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CharmLog())

	s := &Server{cfg: cfg, echo: e}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.galleryHandler)
	s.echo.GET("/img/:name", s.imageHandler)
	s.echo.GET("/srcset", s.srcsetHandler)
	s.echo.GET("/status", s.statusHandler)
	s.echo.POST("/rescan", s.rescanHandler)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	log.Infof("Serving %s on http://%s", s.cfg.Library.Dir(), addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
