package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Intersects(t *testing.T) {
	view := Rect{Width: 100, Height: 100}

	assert.True(t, view.Intersects(Rect{X: 10, Y: 10, Width: 10, Height: 10}))
	assert.True(t, view.Intersects(Rect{X: 90, Y: 90, Width: 50, Height: 50}))
	assert.False(t, view.Intersects(Rect{Y: 500, Width: 10, Height: 10}))
	assert.False(t, view.Intersects(Rect{X: -50, Width: 10, Height: 10}))
}

func TestViewport_FiresOnceWhenScrolledIntoView(t *testing.T) {
	v := NewViewport(800, 600)
	box := NewBox(Rect{Y: 1000, Width: 400, Height: 300})

	calls := 0
	v.Observe(box, func() { calls++ })

	assert.Equal(t, 0, v.Flush())
	assert.Equal(t, 0, calls)

	assert.Equal(t, 1, v.ScrollTo(0, 700))
	assert.Equal(t, 1, calls)

	// Leaving and re-entering does not fire again.
	v.ScrollTo(0, 0)
	v.ScrollTo(0, 700)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, v.Pending())
}

func TestViewport_CancelPreventsCallback(t *testing.T) {
	v := NewViewport(800, 600)
	box := NewBox(Rect{Y: 1000, Width: 400, Height: 300})

	calls := 0
	sub := v.Observe(box, func() { calls++ })
	sub.Cancel()
	sub.Cancel()

	v.ScrollTo(0, 900)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, v.Pending())
}

func TestViewport_CancelAfterFireIsSafe(t *testing.T) {
	v := NewViewport(800, 600)
	box := NewBox(Rect{Y: 1000, Width: 10, Height: 10})
	sub := v.Observe(box, func() {})

	assert.Equal(t, 1, v.ScrollTo(0, 900))
	sub.Cancel()
	sub.Cancel()
}

func TestViewport_FiresOnObserveWhenAlreadyVisible(t *testing.T) {
	v := NewViewport(800, 600)

	calls := 0
	sub := v.Observe(NewBox(Rect{Width: 10, Height: 10}), func() { calls++ })

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, v.Pending())
	assert.Equal(t, 0, v.Flush())
	assert.Equal(t, 1, calls)
	sub.Cancel()
}

func TestViewport_NilElementIsInert(t *testing.T) {
	v := NewViewport(800, 600)
	sub := v.Observe(nil, func() { t.Fatal("callback fired for nil element") })
	sub.Cancel()

	assert.Equal(t, 0, v.Pending())
	assert.Equal(t, 0, v.Flush())
}

func TestViewport_CallbackMayObserveAgain(t *testing.T) {
	v := NewViewport(800, 600)
	outer := NewBox(Rect{Y: 1000, Width: 10, Height: 10})
	inner := NewBox(Rect{Y: 1200, Width: 10, Height: 10})

	fired := 0
	v.Observe(outer, func() {
		fired++
		v.Observe(inner, func() { fired++ })
	})

	v.ScrollTo(0, 500)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, v.Pending())

	v.ScrollTo(0, 700)
	assert.Equal(t, 2, fired)
}

func TestViewport_ResizeRevealsElement(t *testing.T) {
	v := NewViewport(800, 600)
	box := NewBox(Rect{Y: 700, Width: 100, Height: 100})

	fired := false
	v.Observe(box, func() { fired = true })

	v.Resize(800, 1000)
	assert.True(t, fired)
}

func TestBox_SetBounds(t *testing.T) {
	v := NewViewport(800, 600)
	box := NewBox(Rect{Y: 5000, Width: 10, Height: 10})

	fired := false
	v.Observe(box, func() { fired = true })
	v.Flush()
	assert.False(t, fired)

	box.SetBounds(Rect{Y: 100, Width: 10, Height: 10})
	v.Flush()
	assert.True(t, fired)
}
