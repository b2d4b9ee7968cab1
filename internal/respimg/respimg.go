// Package respimg renders a lazily loaded, responsive image.
//
// An Image reserves layout space for its descriptor's aspect ratio, shows a
// blurred placeholder and an optional background colour while loading, starts
// the full image only once its container is visible, and fades it in when the
// load completes. Everything it depends on from the host platform is passed in
// through an Environment.
package respimg

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matjam/lazyimg/internal/registry"
	"github.com/matjam/lazyimg/internal/visibility"
)

type State int

const (
	// StatePending is used where nothing can be painted, such as a server
	// render. The main image is never rendered.
	StatePending State = iota
	StateWaitingForVisibility
	StateVisibleLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateWaitingForVisibility:
		return "waiting-for-visibility"
	case StateVisibleLoading:
		return "visible-loading"
	case StateLoaded:
		return "loaded"
	}
	return "unknown"
}

// FormatSupport reports whether the client can decode the alternate format.
type FormatSupport interface {
	Supported() bool
}

// Environment holds the platform capabilities an Image may use.
type Environment struct {
	// HasViewport is false where nothing will be painted, e.g. when rendering
	// on a server.
	HasViewport bool
	// Watcher is nil when the platform cannot observe visibility. Images then
	// load eagerly.
	Watcher visibility.Watcher
	// Formats is nil when alternate formats are never supported.
	Formats FormatSupport
	// Registry is shared by all images of a process. A nil Registry gives
	// the image a private one.
	Registry *registry.Registry
}

// LoadState is a snapshot of the flags that drive rendering.
type LoadState struct {
	IsVisible                        bool `json:"is_visible"`
	IsImageLoaded                    bool `json:"is_image_loaded"`
	IsVisibilityObservationSupported bool `json:"is_visibility_observation_supported"`
}

// Image is one rendered responsive image.
type Image struct {
	sync.Mutex
	env   Environment
	image Descriptor
	cfg   DisplayConfig

	state     State
	flags     LoadState
	sub       visibility.Subscription
	unmounted bool
	notified  bool
}

// New decides the initial state from env without blocking.
func New(env Environment, image Descriptor, cfg DisplayConfig) *Image {
	if env.Registry == nil {
		env.Registry = registry.New()
	}

	img := &Image{
		env:   env,
		image: image,
		cfg:   cfg.Normalize(),
	}

	switch {
	case env.Registry.HasBeenLoaded(image.Key()):
		img.state = StateLoaded
		img.flags = LoadState{IsVisible: true, IsImageLoaded: true}
	case !env.HasViewport:
		img.state = StatePending
	case env.Watcher == nil:
		// Without visibility observation load straight away, unfaded.
		img.state = StateVisibleLoading
		img.flags = LoadState{IsVisible: true, IsImageLoaded: true}
	default:
		img.state = StateWaitingForVisibility
		img.flags = LoadState{IsVisibilityObservationSupported: true}
	}

	log.Debugf("image %q starts %v", image.Src, img.state)
	return img
}

func (i *Image) State() State {
	i.Lock()
	defer i.Unlock()
	return i.state
}

func (i *Image) LoadState() LoadState {
	i.Lock()
	defer i.Unlock()
	return i.flags
}

func (i *Image) Descriptor() Descriptor {
	return i.image
}

// Mount attaches visibility observation to the image's container. It does
// nothing when observation is not in use, when el is nil, or when the image
// is already observed.
func (i *Image) Mount(el visibility.Element) {
	i.Lock()
	if !i.flags.IsVisibilityObservationSupported || el == nil || i.sub != nil ||
		i.unmounted || i.state != StateWaitingForVisibility {
		i.Unlock()
		return
	}
	watcher := i.env.Watcher
	i.Unlock()

	// An element already in view calls becameVisible inside Observe.
	sub := watcher.Observe(el, i.becameVisible)

	i.Lock()
	defer i.Unlock()
	if i.unmounted || i.sub != nil || i.state != StateWaitingForVisibility {
		sub.Cancel()
		return
	}
	i.sub = sub
}

// Unmount revokes the visibility subscription. Callbacks arriving later are
// ignored.
func (i *Image) Unmount() {
	i.Lock()
	i.unmounted = true
	sub := i.sub
	i.sub = nil
	i.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (i *Image) becameVisible() {
	i.Lock()
	if i.unmounted || i.state != StateWaitingForVisibility {
		i.Unlock()
		return
	}
	i.state = StateVisibleLoading
	i.flags.IsVisible = true
	i.flags.IsImageLoaded = false
	i.sub = nil
	onChange := i.cfg.OnStateChange
	i.Unlock()

	log.Debugf("image %q became visible", i.image.Src)
	if onChange != nil {
		onChange(StateVisibleLoading)
	}
}

// ImageLoaded handles the main image's load event. The registry is updated
// before the caller's OnLoad runs so a re-render from inside OnLoad already
// sees the image as loaded. Repeated events have no effect.
func (i *Image) ImageLoaded() {
	i.Lock()
	if i.unmounted || !i.flags.IsVisible || i.notified {
		i.Unlock()
		return
	}
	i.notified = true

	if i.flags.IsVisibilityObservationSupported {
		i.env.Registry.MarkLoaded(i.image.Key())
	}
	changed := i.state != StateLoaded
	i.state = StateLoaded
	i.flags.IsImageLoaded = true
	onLoad, onChange := i.cfg.OnLoad, i.cfg.OnStateChange
	i.Unlock()

	log.Debugf("image %q loaded", i.image.Src)
	if onLoad != nil {
		onLoad()
	}
	if changed && onChange != nil {
		onChange(StateLoaded)
	}
}
