package container

import (
	"testing"
	"time"
)

func TestWidthProviderObserve(t *testing.T) {
	b := newBoard(t, nil)
	wp := NewWidthProvider(b.c, nil)

	wp.Observe(800)
	wp.Observe(800)
	wp.Observe(-20)

	if b.c.Props().Width != 0 {
		t.Errorf("width = %v, want 0", b.c.Props().Width)
	}
	if len(b.bpCalls) != 2 || b.bpCalls[0] != "md:8" || b.bpCalls[1] != "sm:4" {
		t.Errorf("breakpoint calls = %v, want [md:8 sm:4]", b.bpCalls)
	}
}

func TestWidthProviderStart(t *testing.T) {
	b := newBoard(t, nil)
	sizes := make(chan float64)
	queue := make(chan func())
	stop := make(chan struct{})
	defer close(stop)

	NewWidthProvider(b.c, sizes).Start(queue, stop)
	sizes <- 900

	select {
	case fn := <-queue:
		fn()
	case <-time.After(time.Second):
		t.Fatal("width was not forwarded to the event queue")
	}
	if b.c.Breakpoint() != "md" {
		t.Errorf("breakpoint = %s, want md", b.c.Breakpoint())
	}
}

func TestWidthProviderStopsOnClose(t *testing.T) {
	b := newBoard(t, nil)
	sizes := make(chan float64)
	queue := make(chan func(), 1)
	NewWidthProvider(b.c, sizes).Start(queue, make(chan struct{}))
	close(sizes)

	select {
	case <-queue:
		t.Error("unexpected queued work after sizes closed")
	case <-time.After(20 * time.Millisecond):
	}
}
