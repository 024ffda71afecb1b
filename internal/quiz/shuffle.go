package quiz

import "math/rand/v2"

// RandomSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Shuffle permutes items in place with a Fisher-Yates pass: every position
// from the end down to 1 is swapped with a uniformly chosen position at or
// before it. A nil src uses the global math/rand/v2 generator.
func Shuffle[T any](items []T, src RandomSource) {
	intN := rand.IntN
	if src != nil {
		intN = src.IntN
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// NewSeededSource returns a deterministic source for reproducible orderings.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
