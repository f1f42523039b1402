package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishByKind(t *testing.T) {
	b := NewBus()
	var scrolls, resizes int
	b.Subscribe(Scroll, func(Event) { scrolls++ })
	b.Subscribe(Resize, func(Event) { resizes++ })

	b.Publish(Event{Kind: Scroll, ScrollY: 10})
	b.Publish(Event{Kind: Scroll, ScrollY: 20})
	b.Publish(Event{Kind: Resize, ViewportWidth: 800})

	assert.Equal(t, 2, scrolls)
	assert.Equal(t, 1, resizes)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	var got []float64
	off := b.Subscribe(Scroll, func(e Event) { got = append(got, e.ScrollY) })
	assert.Equal(t, 1, b.Len())

	b.Publish(Event{Kind: Scroll, ScrollY: 1})
	off()
	off()
	b.Publish(Event{Kind: Scroll, ScrollY: 2})

	assert.Equal(t, []float64{1}, got)
	assert.Equal(t, 0, b.Len())
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	var b Bus
	calls := 0
	var off func()
	off = b.Subscribe(Scroll, func(Event) {
		calls++
		off()
	})
	b.Subscribe(Scroll, func(Event) { calls++ })

	b.Publish(Event{Kind: Scroll})
	b.Publish(Event{Kind: Scroll})

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, b.Len())
}
