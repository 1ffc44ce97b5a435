package fallback

import (
	"sync"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Broker fans out "item tracked" notifications to subscribers so open UI
// surfaces can refresh live. Publishing never blocks: a subscriber that
// falls behind misses notifications rather than stalling the writer.
type Broker struct {
	mu   sync.Mutex
	subs map[int]chan tracker.Item
	next int
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan tracker.Item)}
}

// Subscribe registers a subscriber with the given channel buffer and returns
// the channel plus a cancel func that unregisters and closes it.
func (b *Broker) Subscribe(buffer int) (<-chan tracker.Item, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan tracker.Item, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers item to every subscriber that has room.
func (b *Broker) Publish(item tracker.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- item:
		default:
		}
	}
}
