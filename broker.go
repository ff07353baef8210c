package main

import (
	"sync"
	"sync/atomic"
)

// Broker fans decisions out to subscribers. Each subscriber follows one
// plan, or every plan when subscribed with an empty name.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan Decision]string
	dropped atomic.Int64
}

func NewBroker() *Broker {
	return &Broker{clients: make(map[chan Decision]string)}
}

func (b *Broker) Subscribe(plan string) (ch chan Decision, unsubscribe func()) {
	ch = make(chan Decision, 8) // small buffer to avoid head-of-line blocking
	b.mu.Lock()
	b.clients[ch] = plan
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.clients, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broker) Publish(msg Decision) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch, plan := range b.clients {
		if plan != "" && plan != msg.Plan {
			continue
		}
		select {
		case ch <- msg:
		default:
			// client too slow; drop the decision for this client
			b.dropped.Add(1)
		}
	}
}

// Dropped reports how many decisions were not delivered to slow subscribers.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}
