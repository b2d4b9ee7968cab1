package respimg

import (
	"fmt"
	"strconv"
	"time"

	"github.com/matjam/lazyimg/internal/dom"
	"github.com/matjam/lazyimg/internal/srcset"
	"github.com/matjam/lazyimg/internal/types"
)

// Class names set on the layers, for styling and for hosts locating them.
const (
	ClassOuterWrapper = "lazyimg-outer-wrapper"
	ClassWrapper      = "lazyimg-wrapper"
	ClassSpacer       = "lazyimg-spacer"
	ClassPlaceholder  = "lazyimg-placeholder"
	ClassBackground   = "lazyimg-background"
	ClassImage        = "lazyimg-image"
)

// Render builds the element tree for the current state. It returns nil when
// the descriptor has no usable width or height.
func (i *Image) Render() *dom.Element {
	if !i.image.HasGeometry() {
		return nil
	}

	i.Lock()
	flags := i.flags
	i.Unlock()

	cfg := i.cfg

	outer := dom.New("div").SetAttr("class", joinClass(cfg.OuterWrapperClassName, ClassOuterWrapper))
	outer.Style.Set("z-index", "0")
	// Let callers position the component absolutely.
	if pos, _ := cfg.Style.Get("position"); pos == "absolute" {
		outer.Style.Set("position", "initial")
	} else {
		outer.Style.Set("position", "relative")
	}

	wrapper := dom.New("div").SetAttr("class", joinClass(cfg.ClassName, ClassWrapper))
	wrapper.Style = dom.Style{
		{Property: "position", Value: "relative"},
		{Property: "overflow", Value: "hidden"},
		{Property: "z-index", Value: "1"},
	}
	wrapper.Style.Merge(cfg.Style)
	outer.Append(wrapper)

	wrapper.Append(i.spacer())

	hidden := flags.IsImageLoaded
	if cfg.ShowBlurryPlaceholder {
		wrapper.Append(i.placeholder(hidden))
	}
	if cfg.BackgroundColor != "" {
		wrapper.Append(i.background(hidden))
	}
	if flags.IsVisible {
		wrapper.Append(i.main(flags.IsImageLoaded || !cfg.FadeIn))
	}

	return outer
}

func (i *Image) spacer() *dom.Element {
	ratio := 100 * float64(i.image.Height) / float64(i.image.Width)

	el := dom.New("div").SetAttr("class", ClassSpacer)
	el.Style.Set("width", "100%")
	el.Style.Set("padding-bottom", strconv.FormatFloat(ratio, 'f', -1, 64)+"%")
	return el
}

func (i *Image) placeholder(hidden bool) *dom.Element {
	src := i.image.Placeholder
	if src == "" {
		src = i.cfg.URL(i.image.Src, i.cfg.PlaceholderWidth, types.FormatOriginal)
	}

	el := i.layer("img", ClassPlaceholder, hidden, i.cfg.FadeDelay)
	el.SetAttr("src", src)
	el.SetAttr("alt", i.cfg.Alt)
	el.SetAttr("title", i.cfg.Title)
	el.Style.Set("filter", "blur(20px)")
	return el
}

func (i *Image) background(hidden bool) *dom.Element {
	el := i.layer("div", ClassBackground, hidden, i.cfg.FadeDelay)
	el.SetAttr("title", i.cfg.Title)
	el.Style.Set("background-color", i.cfg.BackgroundColor)
	el.Style.Set("bottom", "0")
	el.Style.Set("right", "0")
	return el
}

func (i *Image) main(opaque bool) *dom.Element {
	format := types.FormatOriginal
	if i.cfg.WithAlternateFormat && i.env.Formats != nil && i.env.Formats.Supported() {
		format = types.FormatWebP
	}

	src := i.image.Src
	if format != types.FormatOriginal {
		src = i.cfg.URL(i.image.Src, 0, format)
	}
	set := srcset.Build(i.image.Width, i.cfg.MaxWidth, func(width int) string {
		return i.cfg.URL(i.image.Src, width, format)
	})

	el := i.layer("img", ClassImage, !opaque, 0)
	el.SetAttr("src", src)
	el.SetAttr("srcset", set.Markup)
	el.SetAttr("sizes", set.Sizes)
	el.SetAttr("alt", i.cfg.Alt)
	el.SetAttr("title", i.cfg.Title)
	el.OnLoad = i.ImageLoaded
	return el
}

// layer is an absolutely positioned box covering the wrapper whose opacity
// transitions between shown and hidden.
func (i *Image) layer(tag, class string, hidden bool, delay time.Duration) *dom.Element {
	el := dom.New(tag).SetAttr("class", class)
	el.Style.Set("position", "absolute")
	el.Style.Set("top", "0")
	el.Style.Set("left", "0")
	el.Style.Set("width", "100%")
	el.Style.Set("height", "100%")
	if tag == "img" {
		el.Style.Set("object-fit", string(i.cfg.Fit))
		el.Style.Set("object-position", "center")
	}
	if hidden {
		el.Style.Set("opacity", "0")
	} else {
		el.Style.Set("opacity", "1")
	}
	el.Style.Set("transition", fmt.Sprintf("opacity %s %s", seconds(i.cfg.FadeDuration), i.cfg.Easing))
	if delay > 0 {
		el.Style.Set("transition-delay", seconds(delay))
	}
	return el
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func joinClass(user, own string) string {
	if user == "" {
		return own
	}
	return user + " " + own
}
