package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eringen/storyframe/viewport"
)

func TestWindowFor(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{320, 1},
		{767, 1},
		{768, 2},
		{1023, 2},
		{1024, 3},
		{1920, 3},
		{0, 3},
	}
	for _, tt := range tests {
		if got := WindowFor(tt.width); got != tt.want {
			t.Errorf("WindowFor(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestNextWraps(t *testing.T) {
	c := New(3, 1)
	c.Next()
	c.Next()
	assert.Equal(t, 2, c.Index())
	c.Next()
	assert.Equal(t, 0, c.Index())
}

func TestPreviousWraps(t *testing.T) {
	c := New(4, 2)
	c.Previous()
	assert.Equal(t, 3, c.Index())
	c.Previous()
	assert.Equal(t, 2, c.Index())
}

func TestCyclicClosure(t *testing.T) {
	for count := 1; count <= 9; count++ {
		for window := 1; window <= 3; window++ {
			for start := 0; start < count; start++ {
				c := New(count, window)
				for i := 0; i < start; i++ {
					c.Next()
				}
				for i := 0; i < count; i++ {
					c.Next()
				}
				assert.Equal(t, start, c.Index(), "count=%d window=%d", count, window)

				c.Next()
				c.Previous()
				assert.Equal(t, start, c.Index(), "next/previous count=%d", count)
				c.Previous()
				c.Next()
				assert.Equal(t, start, c.Index(), "previous/next count=%d", count)
			}
		}
	}
}

func TestSevenItemsThreeWide(t *testing.T) {
	c := New(7, 3)
	assert.Equal(t, 3, c.Dots())
	assert.True(t, c.ShowControls())

	c.JumpTo(2)
	assert.Equal(t, 6, c.Index())
	assert.Equal(t, 2, c.ActiveDot())
	assert.InDelta(t, 200.0, c.Offset(), 1e-9)
}

func TestControlsHiddenWhenEverythingFits(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		assert.False(t, New(n, 3).ShowControls(), "count=%d", n)
	}
}

func TestEmpty(t *testing.T) {
	c := New(0, 3)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Dots())
	c.Next()
	c.Previous()
	assert.Equal(t, 0, c.Index())
}

func TestPage(t *testing.T) {
	c := New(7, 3)
	assert.Equal(t, 3, c.Page(1).Index())
	assert.Equal(t, 6, c.Page(9).Index())
	assert.Equal(t, 0, c.Page(-1).Index())
	assert.Equal(t, 0, c.Index())

	c.Next()
	p := c.Page(2)
	assert.Equal(t, 2, p.ActiveDot())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 0, New(0, 3).Page(1).Index())
}

func TestMountFollowsResize(t *testing.T) {
	bus := viewport.NewBus()
	c := New(6, 3)
	c.Mount(bus)
	assert.Equal(t, 1, bus.Len())

	bus.Publish(viewport.Event{Kind: viewport.Resize, ViewportWidth: 500})
	assert.Equal(t, 1, c.Window())
	assert.Equal(t, 6, c.Dots())

	c.Unmount()
	assert.Equal(t, 0, bus.Len())
	bus.Publish(viewport.Event{Kind: viewport.Resize, ViewportWidth: 900})
	assert.Equal(t, 1, c.Window())
}
