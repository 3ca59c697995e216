// Package event is a small in-process dispatcher used to decouple the
// order workflow from its side effects (live feed broadcast, cache
// invalidation). Listeners are registered at boot. Async dispatch runs on
// a bounded worker pool so a burst of orders cannot spawn unbounded
// goroutines.
package event

import (
	"sync"

	"github.com/vyshnav-v/food-delivery/pkg/workerpool"
)

// Domain events fired by the order service.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// Handler receives an event payload.
type Handler func(payload any)

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     = workerpool.New(8)
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload any) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners off the caller's
// goroutine and returns without waiting. When the pool is saturated the
// handler runs inline rather than being dropped.
func FireAsync(event string, payload any) {
	for _, h := range snapshot(event) {
		h := h
		if err := pool.Submit(func() { h(payload) }); err != nil {
			h(payload)
		}
	}
}

// Flush removes all listeners. Used by tests.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
