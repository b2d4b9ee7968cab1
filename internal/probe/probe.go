// Package probe detects whether the runtime can produce WebP images.
package probe

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const (
	webpMIME   = "image/webp"
	webpPrefix = "data:image/webp"
)

// Surface is a drawing surface that can be exported as a data URL.
type Surface interface {
	// HasContext2D reports whether the surface supports 2D drawing.
	HasContext2D() bool
	// DataURL encodes the surface. Surfaces fall back to a format they do
	// support when mimeType is unknown.
	DataURL(mimeType string) string
}

// SurfaceFunc creates a surface, or returns nil when the platform has none.
type SurfaceFunc func() Surface

// Probe answers once per process whether WebP is supported and caches the
// result for the rest of its lifetime.
type Probe struct {
	newSurface SurfaceFunc
	once       sync.Once
	supported  bool
	runs       atomic.Int32
}

func New(newSurface SurfaceFunc) *Probe {
	return &Probe{newSurface: newSurface}
}

func (p *Probe) Supported() bool {
	p.once.Do(func() {
		p.runs.Add(1)
		p.supported = p.detect()
		log.Debugf("webp support probed: %v", p.supported)
	})
	return p.supported
}

// Runs reports how many times the underlying probe executed.
func (p *Probe) Runs() int {
	return int(p.runs.Load())
}

func (p *Probe) detect() bool {
	if p.newSurface == nil {
		return false
	}
	s := p.newSurface()
	if s == nil || !s.HasContext2D() {
		return false
	}
	return strings.HasPrefix(s.DataURL(webpMIME), webpPrefix)
}

// Static is a fixed answer, for hosts that already know what the client
// accepts.
type Static bool

func (s Static) Supported() bool {
	return bool(s)
}
