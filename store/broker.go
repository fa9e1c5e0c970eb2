package store

import (
	"sync"
	"time"
)

// LayoutUpdated is published whenever the active print layout changes, by
// activation or by a save to the already-active layout. Subscribers react
// by re-running the full pipeline; there is no incremental update.
type LayoutUpdated struct {
	LayoutID string    `json:"layoutId"`
	At       time.Time `json:"at"`
}

// Broker is a small in-process fan-out for layout change events. Publish
// never blocks: a subscriber that has fallen behind loses the oldest
// pending event, which is harmless because every event means the same
// thing ("re-paginate now").
type Broker struct {
	mu   sync.Mutex
	subs map[chan LayoutUpdated]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan LayoutUpdated]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (b *Broker) Subscribe() (<-chan LayoutUpdated, func()) {
	ch := make(chan LayoutUpdated, 4)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (b *Broker) Publish(ev LayoutUpdated) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
