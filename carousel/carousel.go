// Package carousel implements the sliding-window state of the preview
// carousel: a current index over a fixed number of items, a visible window
// derived from the viewport width, and the dot/arrow affordances.
package carousel

import (
	"github.com/eringen/storyframe/viewport"
)

// Breakpoints in CSS pixels.
const (
	SmallBreakpoint  = 768
	MediumBreakpoint = 1024
)

// WindowFor returns how many items are visible at the given viewport width.
// An unknown width (zero or negative) is treated as a wide viewport.
func WindowFor(width float64) int {
	switch {
	case width <= 0:
		return 3
	case width < SmallBreakpoint:
		return 1
	case width < MediumBreakpoint:
		return 2
	default:
		return 3
	}
}

// Carousel holds the index state. The zero value is an empty carousel.
// Index is only changed by Previous, Next and JumpTo.
type Carousel struct {
	count  int
	window int
	index  int

	unsubscribe func()
}

// New returns a carousel over count items showing window at a time. A
// window below one is raised to one.
func New(count, window int) *Carousel {
	if count < 0 {
		count = 0
	}
	if window < 1 {
		window = 1
	}
	return &Carousel{count: count, window: window}
}

func (c *Carousel) Count() int  { return c.count }
func (c *Carousel) Window() int { return c.window }
func (c *Carousel) Index() int  { return c.index }

// Empty reports whether there is nothing to show. Callers render the
// "coming soon" state instead of the carousel.
func (c *Carousel) Empty() bool { return c.count == 0 }

// Previous moves one item back, wrapping from the first to the last.
func (c *Carousel) Previous() {
	if c.count == 0 {
		return
	}
	if c.index == 0 {
		c.index = c.count - 1
		return
	}
	c.index--
}

// Next moves one item forward, wrapping from the last to the first.
func (c *Carousel) Next() {
	if c.count == 0 {
		return
	}
	if c.index == c.count-1 {
		c.index = 0
		return
	}
	c.index++
}

// JumpTo moves to the first item of page. The page is not range checked;
// callers pass a value in [0, Dots()).
func (c *Carousel) JumpTo(page int) {
	c.index = page * c.window
}

// Offset is the translateX percentage for the track.
func (c *Carousel) Offset() float64 {
	return float64(c.index) * (100 / float64(c.window))
}

// Dots returns the number of page indicators.
func (c *Carousel) Dots() int {
	return (c.count + c.window - 1) / c.window
}

// ActiveDot returns the page containing the current index.
func (c *Carousel) ActiveDot() int {
	return c.index / c.window
}

// ShowControls reports whether arrows and dots are needed.
func (c *Carousel) ShowControls() bool {
	return c.count > c.window
}

// Resize recomputes the visible window for a new viewport width. The
// index is left alone.
func (c *Carousel) Resize(width float64) {
	c.window = WindowFor(width)
}

// Mount subscribes the carousel to resize events on bus. Calling Mount
// again replaces the previous subscription.
func (c *Carousel) Mount(bus *viewport.Bus) {
	c.Unmount()
	c.unsubscribe = bus.Subscribe(viewport.Resize, func(ev viewport.Event) {
		c.Resize(ev.ViewportWidth)
	})
}

// Unmount removes the resize subscription installed by Mount.
func (c *Carousel) Unmount() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Page returns a new carousel over the same items positioned on page p,
// clamped to the valid page range. c is left unchanged. It is used for
// server-rendered navigation links.
func (c *Carousel) Page(p int) *Carousel {
	out := &Carousel{count: c.count, window: c.window}
	dots := out.Dots()
	if dots == 0 {
		return out
	}
	if p < 0 {
		p = 0
	}
	if p >= dots {
		p = dots - 1
	}
	out.JumpTo(p)
	return out
}
