// Package viewport is a small subscription bus for scroll and resize
// events. Subscribers install on mount and remove themselves on unmount
// through the function returned by Subscribe.
package viewport

import "sync"

// Kind identifies an event type.
type Kind int

const (
	Scroll Kind = iota
	Resize
)

func (k Kind) String() string {
	if k == Resize {
		return "resize"
	}
	return "scroll"
}

// Event carries the raw viewport measurements at the time of the event.
type Event struct {
	Kind           Kind
	ScrollY        float64
	ViewportWidth  float64
	ViewportHeight float64
	DocumentHeight float64
}

// Handler receives events synchronously on the publishing goroutine.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus dispatches events to subscribers of the matching kind.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers fn for events of kind. The returned function removes
// the subscription and is safe to call more than once.
func (b *Bus) Subscribe(kind Kind, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[Kind][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every current subscriber of ev.Kind, in
// subscription order. Handlers may unsubscribe during delivery.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[ev.Kind]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

// Len reports the number of live subscriptions across all kinds.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}
