package util

import (
	"math/rand"
	"time"
)

// NewRand returns a source seeded from the clock. Tests pass their own
// seeded *rand.Rand instead.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a Fisher-Yates shuffled copy of items; the input is left
// untouched.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ShuffleWithLimit shuffles and keeps at most limit items. A limit <= 0
// keeps nothing.
func ShuffleWithLimit[T any](items []T, limit int, rng *rand.Rand) []T {
	if limit <= 0 {
		return []T{}
	}
	shuffled := Shuffle(items, rng)
	if limit > len(shuffled) {
		limit = len(shuffled)
	}
	return shuffled[:limit]
}
