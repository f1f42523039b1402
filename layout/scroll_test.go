package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eringen/storyframe/viewport"
)

func TestReadingProgress(t *testing.T) {
	tests := []struct {
		name string
		m    ScrollMetrics
		want float64
	}{
		{"top", ScrollMetrics{0, 3000, 1000}, 0},
		{"half", ScrollMetrics{1000, 3000, 1000}, 50},
		{"bottom", ScrollMetrics{2000, 3000, 1000}, 100},
		{"overscroll", ScrollMetrics{2500, 3000, 1000}, 100},
		{"negative", ScrollMetrics{-20, 3000, 1000}, 0},
		{"fits viewport", ScrollMetrics{0, 800, 1000}, 100},
	}
	for _, tt := range tests {
		if got := ReadingProgress(tt.m); got != tt.want {
			t.Errorf("ReadingProgress(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParallaxOffset(t *testing.T) {
	assert.InDelta(t, 30.0, ParallaxOffset(100), 1e-9)
	assert.Equal(t, 0.0, ParallaxOffset(-5))
}

func TestScrollTrackerLifecycle(t *testing.T) {
	bus := viewport.NewBus()
	tr := NewScrollTracker(Immersive)
	tr.Mount(bus)
	tr.Mount(bus)
	assert.Equal(t, 1, bus.Len())

	bus.Publish(viewport.Event{Kind: viewport.Scroll, ScrollY: 500, DocumentHeight: 2000, ViewportHeight: 1000})
	st := tr.State()
	assert.InDelta(t, 50.0, st.Progress, 1e-9)
	assert.InDelta(t, 150.0, st.Parallax, 1e-9)

	tr.Unmount()
	assert.Equal(t, 0, bus.Len())
	bus.Publish(viewport.Event{Kind: viewport.Scroll, ScrollY: 1000, DocumentHeight: 2000, ViewportHeight: 1000})
	assert.InDelta(t, 50.0, tr.State().Progress, 1e-9)
}

func TestScrollTrackerWithoutParallax(t *testing.T) {
	bus := viewport.NewBus()
	tr := NewScrollTracker(Minimal)
	tr.Mount(bus)
	defer tr.Unmount()

	bus.Publish(viewport.Event{Kind: viewport.Scroll, ScrollY: 400, DocumentHeight: 1800, ViewportHeight: 1000})
	assert.InDelta(t, 50.0, tr.State().Progress, 1e-9)
	assert.Equal(t, 0.0, tr.State().Parallax)
	assert.True(t, Minimal.ShowsProgress())
	assert.False(t, Magazine.ShowsProgress())
}
