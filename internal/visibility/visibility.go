// Package visibility notifies observers when elements first enter a viewport.
package visibility

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and o overlap. Touching edges count, so a
// zero-sized element on the viewport border is visible.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.Width && o.X <= r.X+r.Width &&
		r.Y <= o.Y+o.Height && o.Y <= r.Y+r.Height
}

// Element is anything that occupies space in the document.
type Element interface {
	Bounds() Rect
}

// Subscription is returned by Observe. Cancel stops the observation; it is
// safe to call more than once and after the callback fired.
type Subscription interface {
	Cancel()
}

// Watcher fires onFirstVisible at most once, the first time el becomes
// visible, and then stops observing el.
type Watcher interface {
	Observe(el Element, onFirstVisible func()) Subscription
}

type observation struct {
	el Element
	fn func()
}

// Viewport is an in-process Watcher. Observers are evaluated whenever the
// viewport moves or Flush is called; callbacks run on the calling goroutine
// after the viewport lock is released.
type Viewport struct {
	sync.Mutex
	view    Rect
	nextID  uint64
	pending map[uint64]*observation
}

func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		view:    Rect{Width: width, Height: height},
		pending: make(map[uint64]*observation),
	}
}

// Observe registers el. An element already in view fires before Observe
// returns, like the initial notification of a browser intersection observer.
func (v *Viewport) Observe(el Element, onFirstVisible func()) Subscription {
	if el == nil || onFirstVisible == nil {
		return noop{}
	}

	v.Lock()
	v.nextID++
	id := v.nextID
	visible := v.view.Intersects(el.Bounds())
	if !visible {
		v.pending[id] = &observation{el: el, fn: onFirstVisible}
	}
	v.Unlock()

	sub := &subscription{v: v, id: id}
	if visible {
		log.Debugf("element %d visible on observe", id)
		onFirstVisible()
		return sub
	}
	log.Debugf("observing element %d", id)
	return sub
}

// ScrollTo moves the viewport origin and fires callbacks for elements that
// became visible.
func (v *Viewport) ScrollTo(x, y float64) int {
	v.Lock()
	v.view.X, v.view.Y = x, y
	v.Unlock()
	return v.Flush()
}

func (v *Viewport) Resize(width, height float64) int {
	v.Lock()
	v.view.Width, v.view.Height = width, height
	v.Unlock()
	return v.Flush()
}

// Flush evaluates every pending observation against the current viewport and
// returns how many callbacks fired.
func (v *Viewport) Flush() int {
	v.Lock()
	var fire []func()
	for id, o := range v.pending {
		if v.view.Intersects(o.el.Bounds()) {
			fire = append(fire, o.fn)
			delete(v.pending, id)
		}
	}
	v.Unlock()

	for _, fn := range fire {
		fn()
	}
	return len(fire)
}

// Pending reports the number of observations that have not fired yet.
func (v *Viewport) Pending() int {
	v.Lock()
	defer v.Unlock()
	return len(v.pending)
}

func (v *Viewport) cancel(id uint64) {
	v.Lock()
	defer v.Unlock()
	delete(v.pending, id)
}

type subscription struct {
	v  *Viewport
	id uint64
}

func (s *subscription) Cancel() {
	s.v.cancel(s.id)
}

type noop struct{}

func (noop) Cancel() {}

// Box is an Element with settable bounds.
type Box struct {
	sync.Mutex
	rect Rect
}

func NewBox(r Rect) *Box {
	return &Box{rect: r}
}

func (b *Box) Bounds() Rect {
	b.Lock()
	defer b.Unlock()
	return b.rect
}

func (b *Box) SetBounds(r Rect) {
	b.Lock()
	defer b.Unlock()
	b.rect = r
}
