package timeline

import "github.com/nathoo/slotline/types"

// RemoveIntent is a direct attack on one slot. Species that resist removal
// are left in place and an armor_hit is emitted.
func (t *Timeline) RemoveIntent(index int) {
	it, ok := t.At(index)
	if !ok {
		return
	}
	if behaviorOf(it.species).resistRemove {
		t.rejected(index, it)
		return
	}
	t.kill(index)
}

// ThunderIntent strikes index and both neighbours. It bypasses armor but
// not species that resist area effects.
func (t *Timeline) ThunderIntent(index int) {
	if !t.inRange(index) {
		return
	}
	lo, hi := max(index-1, 0), min(index+1, len(t.slots)-1)
	for i := lo; i <= hi; i++ {
		it, ok := t.At(i)
		if !ok {
			continue
		}
		if behaviorOf(it.species).resistArea {
			t.rejected(i, it)
			continue
		}
		t.kill(i)
	}
}

// StunIntent makes the occupant skip its next movement step.
func (t *Timeline) StunIntent(index int) {
	it, ok := t.At(index)
	if !ok {
		return
	}
	if behaviorOf(it.species).resistStun {
		t.rejected(index, it)
		return
	}
	it.SetStun(true)
	t.emit(types.Event{Kind: types.EventIntentStunned, Slot: index, Species: it.species})
}

// TryMoveIntent forces the occupant one slot in direction (+1 back, -1 front).
// Moving past the back slot destroys the intent; moving past the front does
// nothing. Collisions destroy one or both intents depending on species.
func (t *Timeline) TryMoveIntent(index, direction int) {
	if direction != 1 && direction != -1 {
		return
	}
	mover, ok := t.At(index)
	if !ok {
		return
	}
	target := index + direction
	if target >= len(t.slots) {
		t.kill(index)
		return
	}
	if target < 0 {
		return
	}

	occupant := t.slots[target]
	if occupant == nil {
		t.slots[target] = mover
		t.slots[index] = nil
		t.emit(types.Event{Kind: types.EventIntentMoved, Slot: index, To: target, Species: mover.species})
		return
	}

	switch {
	case behaviorOf(mover.species).crushes:
		t.kill(target)
		t.jitter(index, mover)
	case behaviorOf(occupant.species).wall:
		t.kill(index)
		t.jitter(target, occupant)
	default:
		t.kill(index)
		t.kill(target)
		t.emit(types.Event{Kind: types.EventCameraShake, Slot: target})
	}
}

// kill is the only path that removes an intent and counts it as defeated.
func (t *Timeline) kill(index int) {
	it, ok := t.At(index)
	if !ok {
		return
	}
	t.slots[index] = nil
	t.emit(types.Event{Kind: types.EventEnemyDefeated, Slot: index, Species: it.species})

	if !behaviorOf(it.species).explodes {
		return
	}
	t.emit(types.Event{Kind: types.EventBombExploded, Slot: index, Species: it.species})
	t.killNeighbor(index - 1)
	t.killNeighbor(index + 1)
}

// killNeighbor destroys a slot caught in a blast. It never chains: a bomb
// caught in a blast is destroyed without exploding.
func (t *Timeline) killNeighbor(index int) {
	it, ok := t.At(index)
	if !ok {
		return
	}
	if behaviorOf(it.species).resistChain {
		t.jitter(index, it)
		return
	}
	t.slots[index] = nil
	t.emit(types.Event{Kind: types.EventEnemyDefeated, Slot: index, Species: it.species})
}
