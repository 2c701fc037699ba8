// Package randutil centralises how random sources are seeded so every call
// site that wants reproducible shuffles derives them the same way.
package randutil

import rand "math/rand/v2"

// New returns a *rand.Rand seeded deterministically from a single int64.
// rand/v2's PCG wants two 64-bit seeds; both are derived from the input by
// a splitmix64-style finalizer so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u^0x9e3779b97f4a7c15)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
