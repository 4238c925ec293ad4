// Package events carries style changes from a hosted document to its viewers.
package events

import "sync"

// StyleChangeEvent records one style write on a hosted document.
type StyleChangeEvent struct {
	Target   string
	Property string
	Value    string
}

type styleKey struct {
	target, property string
}

// Bus queues style changes for a single reader. Pending changes are
// coalesced per (target, property): a newer value replaces one the reader
// has not taken yet, so the latest value of every property is always
// delivered and Publish never blocks.
type Bus struct {
	mu      sync.Mutex
	pending []StyleChangeEvent
	index   map[styleKey]int
	notify  chan struct{}
	closed  bool
}

func NewBus() *Bus {
	return &Bus{
		index:  make(map[styleKey]int),
		notify: make(chan struct{}, 1),
	}
}

// Publish queues ev. It reports false once the bus is closed.
func (b *Bus) Publish(ev StyleChangeEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	k := styleKey{ev.Target, ev.Property}
	if i, ok := b.index[k]; ok {
		b.pending[i] = ev
	} else {
		b.index[k] = len(b.pending)
		b.pending = append(b.pending, ev)
	}
	select {
	case b.notify <- struct{}{}:
	default:
	}
	return true
}

// Next blocks until changes are pending and returns them in first-published
// order. After Close it returns what is still pending, then false.
func (b *Bus) Next() ([]StyleChangeEvent, bool) {
	for {
		b.mu.Lock()
		if len(b.pending) > 0 {
			out := b.pending
			b.pending = nil
			clear(b.index)
			b.mu.Unlock()
			return out, true
		}
		if b.closed {
			b.mu.Unlock()
			return nil, false
		}
		b.mu.Unlock()
		<-b.notify
	}
}

// Close stops the bus. Later publishes are rejected. Safe to call twice.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.notify)
}
