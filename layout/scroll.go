package layout

import (
	"math"
	"sync"

	"github.com/eringen/storyframe/viewport"
)

// ParallaxFactor scales the vertical scroll offset into the hero offset.
const ParallaxFactor = 0.3

// ScrollMetrics are the raw inputs of the scroll derivations.
type ScrollMetrics struct {
	ScrollY        float64
	DocumentHeight float64
	ViewportHeight float64
}

// ReadingProgress returns how far the reader has scrolled, in [0, 100].
// A document that fits in the viewport counts as fully read.
func ReadingProgress(m ScrollMetrics) float64 {
	scrollable := m.DocumentHeight - m.ViewportHeight
	if scrollable <= 0 {
		return 100
	}
	p := m.ScrollY / scrollable * 100
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(p, 100))
}

// ParallaxOffset returns the hero's vertical offset in pixels.
func ParallaxOffset(scrollY float64) float64 {
	if scrollY < 0 {
		return 0
	}
	return scrollY * ParallaxFactor
}

// ScrollState is the derived state after the latest scroll event.
type ScrollState struct {
	Progress float64
	Parallax float64
}

// ScrollTracker keeps ScrollState current while mounted on a viewport bus.
type ScrollTracker struct {
	// Parallax enables the hero offset. Variants without parallax leave it
	// false and the offset stays zero.
	Parallax bool

	mu          sync.Mutex
	state       ScrollState
	unsubscribe func()
}

// NewScrollTracker returns a tracker for v.
func NewScrollTracker(v Variant) *ScrollTracker {
	return &ScrollTracker{Parallax: v == Immersive}
}

// Mount subscribes to scroll events. Mounting twice replaces the earlier
// subscription.
func (t *ScrollTracker) Mount(bus *viewport.Bus) {
	t.Unmount()
	off := bus.Subscribe(viewport.Scroll, t.handle)
	t.mu.Lock()
	t.unsubscribe = off
	t.mu.Unlock()
}

// Unmount removes the subscription.
func (t *ScrollTracker) Unmount() {
	t.mu.Lock()
	off := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()
	if off != nil {
		off()
	}
}

func (t *ScrollTracker) handle(ev viewport.Event) {
	next := ScrollState{
		Progress: ReadingProgress(ScrollMetrics{
			ScrollY:        ev.ScrollY,
			DocumentHeight: ev.DocumentHeight,
			ViewportHeight: ev.ViewportHeight,
		}),
	}
	if t.Parallax {
		next.Parallax = ParallaxOffset(ev.ScrollY)
	}
	t.mu.Lock()
	t.state = next
	t.mu.Unlock()
}

// State returns the latest derived state.
func (t *ScrollTracker) State() ScrollState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ShowsProgress reports whether the variant shows a reading-progress indicator.
func (v Variant) ShowsProgress() bool {
	return v == Immersive || v == Minimal
}
