package event

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFire(t *testing.T) {
	Flush()
	defer Flush()

	var calls atomic.Int64
	Listen(OrderCreated, func(any) { calls.Add(1) })
	Listen(OrderCreated, func(any) { calls.Add(1) })
	Listen(OrderStatusChanged, func(any) { calls.Add(100) })

	Fire(OrderCreated, nil)

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestFireAsync(t *testing.T) {
	Flush()
	defer Flush()

	done := make(chan string, 1)
	Listen(OrderStatusChanged, func(payload any) {
		done <- payload.(string)
	})

	FireAsync(OrderStatusChanged, "confirmed")

	select {
	case got := <-done:
		if got != "confirmed" {
			t.Errorf("payload = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("async handler never ran")
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	Flush()
	defer Flush()
	Fire("order.never_registered", nil)
}
