// Package timeline implements the slot track that hostile intents advance
// along. Every operation runs to completion synchronously; effects the track
// does not resolve itself are pushed to subscribed listeners.
//
// Invalid input (out-of-range indices, empty slots) is absorbed as a silent
// no-op. There is no error channel.
package timeline

import "github.com/nathoo/slotline/types"

// Timeline is a fixed-capacity array of slots. Slot 0 is the front.
type Timeline struct {
	slots     []*Intent
	listeners []Listener
}

// SlotView is a read-only copy of one slot for rendering.
type SlotView struct {
	Occupied  bool
	Action    types.ActionType
	Magnitude int
	Species   types.Species
	Stunned   bool
}

// New creates an empty timeline with size slots (at least one).
func New(size int) *Timeline {
	if size < 1 {
		size = 1
	}
	return &Timeline{slots: make([]*Intent, size)}
}

// Subscribe registers l for every future event.
func (t *Timeline) Subscribe(l Listener) {
	t.listeners = append(t.listeners, l)
}

func (t *Timeline) emit(ev types.Event) {
	for _, l := range t.listeners {
		l.OnEvent(ev)
	}
}

// Size returns the number of slots.
func (t *Timeline) Size() int {
	return len(t.slots)
}

func (t *Timeline) inRange(index int) bool {
	return index >= 0 && index < len(t.slots)
}

// At returns the intent in a slot.
func (t *Timeline) At(index int) (*Intent, bool) {
	if !t.inRange(index) || t.slots[index] == nil {
		return nil, false
	}
	return t.slots[index], true
}

// Occupied reports whether a slot holds an intent.
func (t *Timeline) Occupied(index int) bool {
	_, ok := t.At(index)
	return ok
}

// Count returns the number of occupied slots.
func (t *Timeline) Count() int {
	n := 0
	for _, it := range t.slots {
		if it != nil {
			n++
		}
	}
	return n
}

// Snapshot copies the current slot contents front to back.
func (t *Timeline) Snapshot() []SlotView {
	out := make([]SlotView, len(t.slots))
	for i, it := range t.slots {
		if it == nil {
			continue
		}
		out[i] = SlotView{
			Occupied:  true,
			Action:    it.action,
			Magnitude: it.magnitude,
			Species:   it.species,
			Stunned:   it.stunned,
		}
	}
	return out
}

// Spawn places a new intent at index. An existing occupant is replaced
// without being counted as defeated and without any immunity check.
func (t *Timeline) Spawn(index int, action types.ActionType, magnitude int, species types.Species) {
	if !t.inRange(index) {
		return
	}
	it := newIntent(action, magnitude, species)
	t.slots[index] = it
	t.emit(types.Event{
		Kind:      types.EventIntentSpawned,
		Slot:      index,
		Action:    it.action,
		Magnitude: it.magnitude,
		Species:   it.species,
	})
}

// ApplyRage raises the magnitude of every current occupant by amount.
func (t *Timeline) ApplyRage(amount int) {
	if amount <= 0 {
		return
	}
	for _, it := range t.slots {
		if it != nil {
			it.magnitude += amount
		}
	}
}

// HasHacker reports whether any slot holds a card-corrupting intent.
func (t *Timeline) HasHacker() bool {
	for _, it := range t.slots {
		if it != nil && behaviorOf(it.species).corrupts {
			return true
		}
	}
	return false
}

func (t *Timeline) jitter(index int, it *Intent) {
	t.emit(types.Event{Kind: types.EventIntentJitter, Slot: index, Species: it.species})
}

func (t *Timeline) rejected(index int, it *Intent) {
	t.jitter(index, it)
	t.emit(types.Event{Kind: types.EventArmorHit, Slot: index, Species: it.species})
}
