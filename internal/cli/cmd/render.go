package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matjam/lazyimg/internal/cli/cmd/utils"
	"github.com/matjam/lazyimg/internal/dom"
	"github.com/matjam/lazyimg/internal/probe"
	"github.com/matjam/lazyimg/internal/registry"
	"github.com/matjam/lazyimg/internal/respimg"
	"github.com/matjam/lazyimg/internal/visibility"
)

// Environments the render command can simulate.
const (
	EnvSSR     = "ssr"
	EnvEager   = "eager"
	EnvObserve = "observe"
)

type renderOptions struct {
	image    respimg.Descriptor
	title    string
	alt      string
	env      string
	visible  bool
	loaded   bool
	webp     string
	repeat   bool
	viewport float64
}

func NewRenderCmd() *cobra.Command {
	opts := renderOptions{}

	c := &cobra.Command{
		Use:   "render",
		Short: "Render the HTML of one responsive image",
		Long: `Renders a responsive image through a simulated client.

With --env observe the image waits for its container to scroll into view;
--visible scrolls it into view and --loaded delivers the load event, so each
stage of the loading sequence can be inspected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderImage(opts, utils.DisplayConfig(viper.GetViper()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().StringVar(&opts.image.Src, "src", "", "image URL")
	c.Flags().IntVar(&opts.image.Width, "width", 0, "natural width in pixels")
	c.Flags().IntVar(&opts.image.Height, "height", 0, "natural height in pixels")
	c.Flags().StringVar(&opts.image.Placeholder, "placeholder", "", "placeholder thumbnail URL")
	c.Flags().StringVar(&opts.title, "title", "", "title attribute")
	c.Flags().StringVar(&opts.alt, "alt", "", "alt text")
	c.Flags().StringVar(&opts.env, "env", EnvObserve, "environment: ssr, eager or observe")
	c.Flags().BoolVar(&opts.visible, "visible", false, "scroll the image into view")
	c.Flags().BoolVar(&opts.loaded, "loaded", false, "deliver the image load event")
	c.Flags().StringVar(&opts.webp, "webp", "probe", "webp support: probe, yes or no")
	c.Flags().BoolVar(&opts.repeat, "repeat", false, "render a second instance of the same image after the first loaded")
	c.Flags().Float64Var(&opts.viewport, "viewport-height", 900, "simulated viewport height")
	_ = c.MarkFlagRequired("src")

	return c
}

func renderImage(opts renderOptions, display respimg.DisplayConfig) (string, error) {
	display.Title = opts.title
	display.Alt = opts.alt

	env := respimg.Environment{Registry: registry.New()}
	switch opts.webp {
	case "yes":
		env.Formats = probe.Static(true)
	case "no":
		env.Formats = probe.Static(false)
	case "probe":
		env.Formats = probe.New(probe.DefaultSurface)
	default:
		return "", fmt.Errorf("unknown --webp value %q", opts.webp)
	}

	// The container sits just below the fold.
	viewport := visibility.NewViewport(1280, opts.viewport)
	box := visibility.NewBox(visibility.Rect{Y: opts.viewport + 1, Width: 1280, Height: 400})

	switch opts.env {
	case EnvSSR:
	case EnvEager:
		env.HasViewport = true
	case EnvObserve:
		env.HasViewport = true
		env.Watcher = viewport
	default:
		return "", fmt.Errorf("unknown environment %q", opts.env)
	}

	display.OnStateChange = func(s respimg.State) {
		log.Debugf("state changed to %v", s)
	}

	img := respimg.New(env, opts.image, display)
	defer img.Unmount()

	if img.Render() == nil {
		log.Warnf("image %q has no usable width and height, nothing to render", opts.image.Src)
		return "", nil
	}

	img.Mount(box)
	if opts.visible {
		viewport.ScrollTo(0, box.Bounds().Y)
	}
	if opts.loaded {
		if main := findMain(img.Render()); main != nil && main.OnLoad != nil {
			main.OnLoad()
		} else {
			log.Warnf("no image element to load in state %v", img.State())
		}
	}

	if opts.repeat {
		img = respimg.New(env, opts.image, display)
		defer img.Unmount()
	}

	log.Debugf("rendering in state %v (%+v)", img.State(), img.LoadState())
	return dom.RenderString(img.Render())
}

func findMain(tree *dom.Element) *dom.Element {
	return tree.Find(func(e *dom.Element) bool { return e.HasClass(respimg.ClassImage) })
}
