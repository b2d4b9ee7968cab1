package respimg

import (
	"net/url"
	"strconv"
	"time"

	"github.com/matjam/lazyimg/internal/dom"
	"github.com/matjam/lazyimg/internal/types"
)

const (
	DefaultMaxWidth         = 800
	DefaultPlaceholderWidth = 20
	DefaultFadeDuration     = 500 * time.Millisecond
	DefaultFadeDelay        = 250 * time.Millisecond

	// DefaultBackgroundColor is used when the background colour is enabled
	// without naming a colour.
	DefaultBackgroundColor = "lightgray"
)

// Descriptor identifies an image and its natural size in pixels.
type Descriptor struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Placeholder is the source of the blurred thumbnail. When empty the
	// URL builder is asked for a PlaceholderWidth-wide variant of Src.
	Placeholder string `json:"placeholder,omitempty"`
}

// Key is the identity used by the loaded-image registry. Descriptors with the
// same Src share an entry regardless of their dimensions.
func (d Descriptor) Key() string {
	return d.Src
}

// HasGeometry reports whether the descriptor can be laid out.
func (d Descriptor) HasGeometry() bool {
	return d.Width > 0 && d.Height > 0
}

// URLFunc returns the URL of src at width pixels encoded as format. A width of
// 0 asks for the natural size.
type URLFunc func(src string, width int, format types.Format) string

// QueryURL appends w and fm query parameters to src.
func QueryURL(src string, width int, format types.Format) string {
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	q := u.Query()
	if width > 0 {
		q.Set("w", strconv.Itoa(width))
	}
	if format != types.FormatOriginal {
		q.Set("fm", string(format))
	}
	if len(q) == 0 {
		return src
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// DisplayConfig controls how an image is presented. The zero value turns
// off the alternate format, the placeholder and the fade; start from
// DefaultDisplayConfig and override fields instead.
type DisplayConfig struct {
	Title string
	Alt   string

	// MaxWidth is the design-time display width in logical pixels.
	MaxWidth int

	WithAlternateFormat   bool
	ShowBlurryPlaceholder bool

	// BackgroundColor enables the solid colour layer when non-empty. See
	// BackgroundColor for mapping a bool or string setting.
	BackgroundColor string

	FadeIn       bool
	FadeDuration time.Duration
	FadeDelay    time.Duration
	Easing       types.EasingMode
	Fit          types.FitMode

	PlaceholderWidth int

	ClassName             string
	OuterWrapperClassName string
	Style                 dom.Style

	URL URLFunc

	// OnLoad is called once the main image has loaded.
	OnLoad func()
	// OnStateChange is called after every transition so the host can
	// re-render.
	OnStateChange func(State)
}

// DefaultDisplayConfig returns the settings every DisplayConfig should start
// from. Every presentation switch is on and sizes and timings use the
// package defaults.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MaxWidth:              DefaultMaxWidth,
		WithAlternateFormat:   true,
		ShowBlurryPlaceholder: true,
		FadeIn:                true,
		FadeDuration:          DefaultFadeDuration,
		FadeDelay:             DefaultFadeDelay,
		Easing:                types.EasingEase,
		Fit:                   types.FitCover,
		PlaceholderWidth:      DefaultPlaceholderWidth,
		URL:                   QueryURL,
	}
}

// Normalize fills unset numeric and function fields with their defaults. A
// non-positive MaxWidth becomes DefaultMaxWidth. Boolean switches are left
// alone, since false is a valid setting.
func (c DisplayConfig) Normalize() DisplayConfig {
	if c.MaxWidth <= 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	if c.FadeDuration < 0 {
		c.FadeDuration = 0
	}
	if c.FadeDelay < 0 {
		c.FadeDelay = 0
	}
	if c.Easing == "" {
		c.Easing = types.EasingEase
	}
	if c.Fit == "" {
		c.Fit = types.FitCover
	}
	if c.PlaceholderWidth <= 0 {
		c.PlaceholderWidth = DefaultPlaceholderWidth
	}
	if c.URL == nil {
		c.URL = QueryURL
	}
	return c
}

// BackgroundColor maps a loosely typed setting to a colour: true selects
// DefaultBackgroundColor, a string is used as is and anything else disables
// the layer.
func BackgroundColor(v any) string {
	switch c := v.(type) {
	case bool:
		if c {
			return DefaultBackgroundColor
		}
	case string:
		switch c {
		case "true":
			return DefaultBackgroundColor
		case "false":
			return ""
		}
		return c
	}
	return ""
}
