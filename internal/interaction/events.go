// Package interaction turns pointer gestures into grid moves and resizes.
package interaction

import (
	"sync"

	"golang.org/x/net/html"
)

// EventType identifies a pointer event.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParseEventType maps the names produced by String back to event types.
func ParseEventType(s string) (EventType, bool) {
	switch s {
	case "down":
		return PointerDown, true
	case "move":
		return PointerMove, true
	case "up":
		return PointerUp, true
	case "cancel":
		return PointerCancel, true
	}
	return 0, false
}

// PointerEvent is a pointer sample. X and Y are pixels relative to the
// container origin. Target is the node under the pointer, if known.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Target *html.Node
}

// Listener receives dispatched events.
type Listener func(PointerEvent)

// EventTarget is something listeners can be attached to. The returned
// function detaches the listener and is safe to call more than once.
type EventTarget interface {
	AddListener(t EventType, fn Listener) (remove func())
}

type registration struct {
	id int
	fn Listener
}

// Dispatcher is the global event target. Listeners run in registration
// order on the goroutine that calls Dispatch.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventType][]registration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]registration)}
}

// AddListener implements EventTarget.
func (d *Dispatcher) AddListener(t EventType, fn Listener) func() {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], registration{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(t, id) })
	}
}

func (d *Dispatcher) remove(t EventType, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := d.listeners[t]
	for i, r := range regs {
		if r.id == id {
			// copy so an in-flight Dispatch keeps its snapshot intact
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			d.listeners[t] = next
			return
		}
	}
}

// Dispatch delivers ev to every listener registered for its type at the
// time of the call. Listeners may add or remove listeners while running.
func (d *Dispatcher) Dispatch(ev PointerEvent) {
	d.mu.Lock()
	regs := d.listeners[ev.Type]
	d.mu.Unlock()
	for _, r := range regs {
		r.fn(ev)
	}
}

// ListenerCount returns the number of listeners for t.
func (d *Dispatcher) ListenerCount(t EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[t])
}
