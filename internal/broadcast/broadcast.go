// Package broadcast fans style changes out to server-sent event streams.
package broadcast

import (
	"colorchanger/internal/dom"
	"colorchanger/internal/events"
	"sync"
)

// EventBackground is the SSE event name carrying a new body background.
const EventBackground = "background"

const subscriberBuffer = 10

// Message is one SSE frame.
type Message struct {
	Event string
	Data  string
}

// Relay receives every style change the broadcaster forwards.
type Relay func(events.StyleChangeEvent)

type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Message]struct{}
	relays []Relay
	done   bool
}

// NewBroadcaster forwards body background changes from bus to subscribers and
// hands every style change to the relays. When bus is closed and drained,
// every subscriber channel is closed.
func NewBroadcaster(bus *events.Bus, relays ...Relay) *Broadcaster {
	b := &Broadcaster{
		subs:   make(map[chan Message]struct{}),
		relays: relays,
	}
	go b.forward(bus)
	return b
}

func (b *Broadcaster) forward(bus *events.Bus) {
	defer b.shutdown()
	for {
		changes, ok := bus.Next()
		if !ok {
			return
		}
		for _, ev := range changes {
			if ev.Target == dom.BodyID && ev.Property == dom.PropBackgroundColor {
				b.Send(EventBackground, ev.Value)
			}
			for _, relay := range b.relays {
				relay(ev)
			}
		}
	}
}

func (b *Broadcaster) shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// Subscribe returns a channel of messages. After the broadcaster has shut
// down the returned channel is already closed.
func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Send delivers one message to every subscriber without blocking. A
// subscriber whose buffer is full loses its oldest message, so the newest
// one is always queued.
func (b *Broadcaster) Send(event, data string) {
	msg := Message{Event: event, Data: data}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- msg:
			continue
		default:
		}
		// Send is the only writer and holds mu, so one pop makes room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- msg:
		default:
		}
	}
}
