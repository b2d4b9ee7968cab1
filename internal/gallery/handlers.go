package gallery

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/matjam/lazyimg/internal/dom"
	"github.com/matjam/lazyimg/internal/imaging"
	"github.com/matjam/lazyimg/internal/respimg"
	"github.com/matjam/lazyimg/internal/srcset"
	"github.com/matjam/lazyimg/internal/types"
)

func (s *Server) environment() respimg.Environment {
	return respimg.Environment{
		HasViewport: s.cfg.Mode != ModeSSR,
		Formats:     s.cfg.Formats,
		Registry:    s.cfg.Registry,
	}
}

// GET /
func (s *Server) galleryHandler(c echo.Context) error {
	env := s.environment()

	list := dom.New("main").SetAttr("class", "lazyimg-gallery")
	for _, name := range s.cfg.Library.Images() {
		d, err := s.cfg.Library.Descriptor(name)
		if err != nil {
			log.Warnf("Skipping %s: %v", name, err)
			continue
		}

		display := s.cfg.Display
		display.Title = name
		display.Alt = name

		item := dom.New("figure").Append(
			respimg.New(env, d, display).Render(),
			dom.Text("figcaption", name),
		)
		list.Append(item)
	}

	page := dom.New("html",
		dom.New("head",
			dom.New("meta").SetAttr("charset", "utf-8"),
			dom.New("meta").SetAttr("name", "viewport").SetAttr("content", "width=device-width, initial-scale=1"),
			dom.Text("title", s.cfg.Title),
		),
		dom.New("body", dom.Text("h1", s.cfg.Title), list),
	)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	if err := dom.Render(&buf, page); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// GET /img/:name?w=N&fm=F
func (s *Server) imageHandler(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		name = c.Param("name")
	}

	width := 0
	if w := c.QueryParam("w"); w != "" {
		width, err = strconv.Atoi(w)
		if err != nil || width < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "w must be a non-negative integer"})
		}
	}

	format := types.Format(c.QueryParam("fm"))
	if !format.Valid() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fm must be one of webp, jpeg or png"})
	}

	data, format, err := s.cfg.Library.Variant(name, width, format)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, imaging.ContentType(format), data)
}

// GET /srcset?width=N&max=M[&src=S]
func (s *Server) srcsetHandler(c echo.Context) error {
	width, err := strconv.Atoi(c.QueryParam("width"))
	if err != nil || width <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "width must be a positive integer"})
	}

	maxWidth := s.cfg.Display.MaxWidth
	if m := c.QueryParam("max"); m != "" {
		if maxWidth, err = strconv.Atoi(m); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "max must be an integer"})
		}
	}

	src := c.QueryParam("src")
	urlFn := s.cfg.Display.URL
	if urlFn == nil {
		urlFn = respimg.QueryURL
	}

	return c.JSON(http.StatusOK, srcset.Build(width, maxWidth, func(w int) string {
		return urlFn(src, w, types.FormatOriginal)
	}))
}

// GET /status
func (s *Server) statusHandler(c echo.Context) error {
	webp := false
	if s.cfg.Formats != nil {
		webp = s.cfg.Formats.Supported()
	}

	return c.JSONPretty(http.StatusOK, StatusResponse{
		Status:  "ok",
		Message: "lazyimg is running",
		Version: s.cfg.Version,
		PID:     os.Getpid(),
		Config:  s.cfg.ConfigFile,
		Dir:     s.cfg.Library.Dir(),
		Images:  len(s.cfg.Library.Images()),
		Mode:    s.cfg.Mode,
		WebP:    webp,
	}, "  ")
}

// POST /rescan
func (s *Server) rescanHandler(c echo.Context) error {
	if err := s.cfg.Library.Scan(); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"images": len(s.cfg.Library.Images()),
	})
}
