package timeline

import "github.com/nathoo/slotline/types"

// AdvanceTimeline runs the end-of-turn cycle.
//
// The front occupant resolves first: a stunned front intent loses its stun
// and holds its slot, anything else emits enemy_action and leaves the track
// (not counted as defeated). Then every other occupant moves toward the
// front by its species step, lowest index first. An intent whose destination
// is already claimed this pass queues one slot further back, never behind
// its own starting slot.
func (t *Timeline) AdvanceTimeline() {
	next := make([]*Intent, len(t.slots))

	if front := t.slots[0]; front != nil {
		if front.stunned {
			front.SetStun(false)
			next[0] = front
		} else {
			t.emit(types.Event{
				Kind:      types.EventEnemyAction,
				Slot:      0,
				Action:    front.action,
				Magnitude: front.magnitude,
				Species:   front.species,
			})
		}
	}

	for i := 1; i < len(t.slots); i++ {
		it := t.slots[i]
		if it == nil {
			continue
		}
		step := behaviorOf(it.species).step
		if it.stunned {
			step = 0
			it.SetStun(false)
		}
		dest := max(i-step, 0)
		for next[dest] != nil && dest < i {
			dest++
		}
		next[dest] = it
		if dest != i {
			t.emit(types.Event{Kind: types.EventIntentMoved, Slot: i, To: dest, Species: it.species})
		}
	}

	t.slots = next
}
