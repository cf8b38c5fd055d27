package engine

import "math/rand"

// RNG wraps math/rand.Rand with position tracking so traces can show how
// many draws a run has consumed.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Percent returns true with the given percent chance.
func (r *RNG) Percent(chance int) bool {
	if chance >= 100 {
		return true
	}
	if chance <= 0 {
		return false
	}
	r.pos++
	return r.src.Intn(100) < chance
}

// Between returns a random integer in [lo, hi]. If hi < lo, lo is returned.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r.pos++
	return lo + r.src.Intn(hi-lo+1)
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	r.pos++
	return r.src.Intn(n)
}

// WeightedSelect returns an index chosen by weighted random selection.
// Non-positive weights are never chosen; -1 is returned when no weight is
// positive.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	r.pos++
	roll := r.src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
