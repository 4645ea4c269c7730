package core

// Random is the source of randomness consumed by the simulation.
// Inject a seeded RNG (or a scripted fake in tests) for deterministic runs.
type Random interface {
	Float64() float64 // [0, 1)
	Intn(n int) int   // [0, n)
}

// RNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG (Knuth's MMIX constants) and draws from the high bits.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// State returns the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// SetState restores a state captured with State.
func (r *RNG) SetState(s uint64) {
	r.state = s
}

// RangeF returns a uniform value in [lo, hi).
func RangeF(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// RandomSign returns -1 or 1 with equal probability.
func RandomSign(r Random) float64 {
	if r.Float64() > 0.5 {
		return 1
	}
	return -1
}
