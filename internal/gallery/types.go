package gallery

import (
	"github.com/matjam/lazyimg/internal/registry"
	"github.com/matjam/lazyimg/internal/respimg"
)

// Mode selects the environment images are rendered in.
type Mode string

const (
	// ModeEager renders as a client without visibility observation: the
	// full image is part of the first response.
	ModeEager Mode = "eager"
	// ModeSSR renders as a server: only the placeholder layers are sent.
	ModeSSR Mode = "ssr"
)

type Config struct {
	Library    *Library
	Display    respimg.DisplayConfig
	Mode       Mode
	Formats    respimg.FormatSupport
	Registry   *registry.Registry
	Title      string
	ConfigFile string
	Version    string
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
	Config  string `json:"config"`
	Dir     string `json:"dir"`
	Images  int    `json:"images"`
	Mode    Mode   `json:"mode"`
	WebP    bool   `json:"webp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
