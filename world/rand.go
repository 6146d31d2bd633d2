package world

// Rand is a small, explicitly-threaded, deterministic PRNG. It is a value
// type (not *rand.Rand) on purpose: World.Rand must return a *new* World
// whose generator state is independent of the one it was drawn from,
// exactly as every other World mutation does (spec.md §4.5 "any atom that
// consumes randomness must thread the World through to preserve
// determinism"). A splittable linear congruential generator gives us that
// for free without reaching for math/rand's global, mutable state.
type Rand struct {
	state int64
}

// NewRand builds a Rand from a seed. Zero is a valid seed.
func NewRand(seed int64) Rand {
	return Rand{state: seed}
}

// lcgMultiplier/lcgIncrement are the constants used by POSIX drand48,
// chosen for a long period and good low-bit mixing at 48 bits — anything
// cryptographically strong would be overkill for deterministic narrative
// dice rolls.
const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (1 << 48) - 1
)

// Next draws a float64 in [0, 1) and returns the advanced generator.
func (r Rand) Next() (float64, Rand) {
	next := (int64(uint64(r.state)*lcgMultiplier+lcgIncrement) & lcgMask)
	r.state = next
	// Use the top 26 bits for a value uniformly distributed in [0, 1),
	// matching the precision java.util.Random / drand48 style generators
	// commonly use.
	return float64(next>>22) / float64(1<<26), r
}
