package timeline

import (
	"slices"

	"github.com/nathoo/slotline/types"
)

// Listener receives events emitted by a Timeline.
type Listener interface {
	OnEvent(types.Event)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(types.Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev types.Event) { f(ev) }

// Recorder buffers events until drained.
type Recorder struct {
	events []types.Event
}

// OnEvent appends ev to the buffer.
func (r *Recorder) OnEvent(ev types.Event) {
	r.events = append(r.events, ev)
}

// Events returns a copy of the buffered events without clearing them.
func (r *Recorder) Events() []types.Event {
	return slices.Clone(r.events)
}

// Drain returns the buffered events and clears the buffer.
func (r *Recorder) Drain() []types.Event {
	out := r.events
	r.events = nil
	return out
}

// Count returns how many buffered events have the given kind.
func (r *Recorder) Count(kind types.EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
