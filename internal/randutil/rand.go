package randutil

import rand "math/rand/v2"

const golden64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from a single int64.
// rand/v2's PCG wants two 64-bit seeds; deriving both from one value keeps
// every call site reproducible from a single configured seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(scramble(u), scramble(u+golden64)))
}

// scramble is the splitmix64 finalizer, which spreads low-entropy seeds
// (0, 1, timestamps) across the full 64-bit range.
func scramble(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
