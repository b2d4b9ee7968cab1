package respimg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matjam/lazyimg/internal/dom"
	"github.com/matjam/lazyimg/internal/probe"
	"github.com/matjam/lazyimg/internal/types"
)

func eager() Environment {
	return Environment{HasViewport: true}
}

func TestRender_MissingGeometry(t *testing.T) {
	for _, d := range []Descriptor{
		{Src: "/a.jpg"},
		{Src: "/a.jpg", Width: 100},
		{Src: "/a.jpg", Height: 100},
		{Src: "/a.jpg", Width: -1, Height: 100},
	} {
		assert.Nil(t, New(eager(), d, DefaultDisplayConfig()).Render())
	}
}

func TestRender_Layers(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.Title = "Sunset"
	cfg.Alt = "A sunset"
	cfg.BackgroundColor = BackgroundColor(true)
	cfg.ClassName = "hero"
	cfg.OuterWrapperClassName = "frame"

	tree := New(eager(), photo, cfg).Render()
	require.NotNil(t, tree)

	assert.True(t, tree.HasClass("frame"))
	assert.True(t, tree.HasClass(ClassOuterWrapper))
	pos, _ := tree.Style.Get("position")
	assert.Equal(t, "relative", pos)

	require.Len(t, tree.Children, 1)
	wrapper := tree.Children[0]
	assert.True(t, wrapper.HasClass("hero"))

	// spacer, placeholder, background, main image, in that order
	require.Len(t, wrapper.Children, 4)
	assert.True(t, wrapper.Children[0].HasClass(ClassSpacer))
	assert.True(t, wrapper.Children[1].HasClass(ClassPlaceholder))
	assert.True(t, wrapper.Children[2].HasClass(ClassBackground))
	assert.True(t, wrapper.Children[3].HasClass(ClassImage))

	pad, _ := wrapper.Children[0].Style.Get("padding-bottom")
	assert.Equal(t, "50%", pad)

	bg, _ := wrapper.Children[2].Style.Get("background-color")
	assert.Equal(t, "lightgray", bg)

	main := wrapper.Children[3]
	alt, _ := main.Attr("alt")
	title, _ := main.Attr("title")
	assert.Equal(t, "A sunset", alt)
	assert.Equal(t, "Sunset", title)
}

func TestRender_SpacerRatio(t *testing.T) {
	tree := New(eager(), Descriptor{Src: "/a.jpg", Width: 300, Height: 200}, DefaultDisplayConfig()).Render()
	pad, _ := byClass(tree, ClassSpacer).Style.Get("padding-bottom")
	assert.True(t, strings.HasPrefix(pad, "66.666"), pad)
}

func TestRender_OptionalLayersOff(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.ShowBlurryPlaceholder = false

	tree := New(eager(), photo, cfg).Render()
	assert.Nil(t, byClass(tree, ClassPlaceholder))
	assert.Nil(t, byClass(tree, ClassBackground))
	assert.NotNil(t, byClass(tree, ClassImage))
}

func TestRender_SourceSet(t *testing.T) {
	tree := New(eager(), photo, DefaultDisplayConfig()).Render()
	main := byClass(tree, ClassImage)

	src, _ := main.Attr("src")
	assert.Equal(t, "/img/photo.jpg", src)

	set, _ := main.Attr("srcset")
	assert.Equal(t, strings.Join([]string{
		"/img/photo.jpg?w=200 200w",
		"/img/photo.jpg?w=400 400w",
		"/img/photo.jpg?w=800 800w",
		"/img/photo.jpg?w=1200 1200w",
		"/img/photo.jpg?w=1600 1600w",
		"/img/photo.jpg?w=2000 2000w",
	}, ",\n"), set)

	sizes, _ := main.Attr("sizes")
	assert.Equal(t, "(max-width: 800px) 100vw, 800px", sizes)
}

func TestRender_AlternateFormat(t *testing.T) {
	env := eager()
	env.Formats = probe.Static(true)

	main := byClass(New(env, photo, DefaultDisplayConfig()).Render(), ClassImage)
	src, _ := main.Attr("src")
	assert.Equal(t, "/img/photo.jpg?fm=webp", src)
	set, _ := main.Attr("srcset")
	assert.Contains(t, set, "/img/photo.jpg?fm=webp&w=200 200w")

	cfg := DefaultDisplayConfig()
	cfg.WithAlternateFormat = false
	main = byClass(New(env, photo, cfg).Render(), ClassImage)
	src, _ = main.Attr("src")
	assert.Equal(t, "/img/photo.jpg", src)
}

func TestRender_AlternateFormatUnsupported(t *testing.T) {
	env := eager()
	env.Formats = probe.Static(false)

	main := byClass(New(env, photo, DefaultDisplayConfig()).Render(), ClassImage)
	src, _ := main.Attr("src")
	assert.Equal(t, "/img/photo.jpg", src)
}

func TestRender_Placeholder(t *testing.T) {
	tree := New(Environment{}, photo, DefaultDisplayConfig()).Render()
	ph := byClass(tree, ClassPlaceholder)
	src, _ := ph.Attr("src")
	assert.Equal(t, "/img/photo.jpg?w=20", src)

	d := photo
	d.Placeholder = "data:image/png;base64,AAAA"
	ph = byClass(New(Environment{}, d, DefaultDisplayConfig()).Render(), ClassPlaceholder)
	src, _ = ph.Attr("src")
	assert.Equal(t, d.Placeholder, src)
}

func TestRender_Transitions(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.FadeDuration = time.Second
	cfg.FadeDelay = 300 * time.Millisecond
	cfg.Easing = types.EasingLinear
	cfg.Fit = types.FitContain

	tree := New(Environment{}, photo, cfg).Render()
	ph := byClass(tree, ClassPlaceholder)

	tr, _ := ph.Style.Get("transition")
	assert.Equal(t, "opacity 1s linear", tr)
	delay, _ := ph.Style.Get("transition-delay")
	assert.Equal(t, "0.3s", delay)
	fit, _ := ph.Style.Get("object-fit")
	assert.Equal(t, "contain", fit)
}

func TestRender_AbsoluteStylePassthrough(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.Style = dom.Style{{Property: "position", Value: "absolute"}, {Property: "width", Value: "50%"}}

	tree := New(eager(), photo, cfg).Render()
	pos, _ := tree.Style.Get("position")
	assert.Equal(t, "initial", pos)

	wrapper := tree.Children[0]
	pos, _ = wrapper.Style.Get("position")
	width, _ := wrapper.Style.Get("width")
	assert.Equal(t, "absolute", pos)
	assert.Equal(t, "50%", width)
}

func TestRender_HTML(t *testing.T) {
	out, err := dom.RenderString(New(eager(), photo, DefaultDisplayConfig()).Render())
	require.NoError(t, err)

	assert.Contains(t, out, `class="lazyimg-outer-wrapper"`)
	assert.Contains(t, out, `sizes="(max-width: 800px) 100vw, 800px"`)
	assert.Equal(t, 2, strings.Count(out, "<img"))
}

func TestDefaultDisplayConfig(t *testing.T) {
	cfg := DefaultDisplayConfig()

	assert.True(t, cfg.WithAlternateFormat)
	assert.True(t, cfg.ShowBlurryPlaceholder)
	assert.True(t, cfg.FadeIn)
	assert.Equal(t, DefaultMaxWidth, cfg.MaxWidth)
	assert.Equal(t, DefaultFadeDuration, cfg.FadeDuration)
	assert.Equal(t, DefaultFadeDelay, cfg.FadeDelay)
	assert.Equal(t, cfg.MaxWidth, cfg.Normalize().MaxWidth)

	// Normalize does not turn switches back on.
	zero := DisplayConfig{}.Normalize()
	assert.False(t, zero.FadeIn)
	assert.False(t, zero.ShowBlurryPlaceholder)
}

func TestDisplayConfig_Normalize(t *testing.T) {
	cfg := DisplayConfig{MaxWidth: -5, FadeDelay: -time.Second}.Normalize()

	assert.Equal(t, DefaultMaxWidth, cfg.MaxWidth)
	assert.Equal(t, time.Duration(0), cfg.FadeDelay)
	assert.Equal(t, types.EasingEase, cfg.Easing)
	assert.Equal(t, types.FitCover, cfg.Fit)
	assert.Equal(t, DefaultPlaceholderWidth, cfg.PlaceholderWidth)
	assert.NotNil(t, cfg.URL)
}

func TestBackgroundColor(t *testing.T) {
	assert.Equal(t, "lightgray", BackgroundColor(true))
	assert.Equal(t, "", BackgroundColor(false))
	assert.Equal(t, "#fafafa", BackgroundColor("#fafafa"))
	assert.Equal(t, "lightgray", BackgroundColor("true"))
	assert.Equal(t, "", BackgroundColor("false"))
	assert.Equal(t, "", BackgroundColor(nil))
	assert.Equal(t, "", BackgroundColor(42))
}

func TestQueryURL(t *testing.T) {
	assert.Equal(t, "/a.jpg", QueryURL("/a.jpg", 0, types.FormatOriginal))
	assert.Equal(t, "/a.jpg?w=200", QueryURL("/a.jpg", 200, types.FormatOriginal))
	assert.Equal(t, "/a.jpg?fm=webp&w=200", QueryURL("/a.jpg", 200, types.FormatWebP))
	assert.Equal(t, "https://cdn.example.com/a.jpg?q=80&w=50", QueryURL("https://cdn.example.com/a.jpg?q=80", 50, types.FormatOriginal))
}
