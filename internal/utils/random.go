// Package utils holds small helpers shared by the seed plan generator.
package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a seeded pseudo-random generator. Two instances created with the
// same non-zero seed produce the same sequence, so a generated seed plan can
// be reproduced from its seed alone.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a new Random instance with the given seed.
// If seed is 0, a cryptographically random seed is generated.
func NewRandom(seed int64) *Random {
	actualSeed := uint64(seed)
	if seed == 0 {
		actualSeed = generateRandomSeed()
	}
	return newPCG(actualSeed, 0xDEADBEEF)
}

func newPCG(seed, salt uint64) *Random {
	return &Random{
		rng:  rand.New(rand.NewPCG(seed, seed^salt)),
		seed: seed,
	}
}

// generateRandomSeed creates a cryptographically random seed
func generateRandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// Fork derives an independent stream. Forking in the same order from equal
// parents yields equal children, so each table can draw from its own stream
// without shifting the others when its size changes.
func (r *Random) Fork() *Random {
	r.mu.Lock()
	defer r.mu.Unlock()
	return newPCG(r.rng.Uint64(), 0xCAFEBABE)
}

// IntN returns a pseudo-random int in [0, n)
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64Range returns a pseudo-random int64 in [min, max]
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Int64N(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Probability returns true with the given probability (0.0 to 1.0)
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// PickString returns a random string from the slice
func (r *Random) PickString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return slice[r.IntN(len(slice))]
}

// WeightedPick selects an index based on weights.
// weights[i] is the relative weight for index i.
func (r *Random) WeightedPick(weights []int) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return r.IntN(len(weights))
	}

	target := r.IntN(total) + 1
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// TimeBefore returns a time at most window before end, truncated to the minute
func (r *Random) TimeBefore(end time.Time, window time.Duration) time.Time {
	if window <= 0 {
		return end.Truncate(time.Minute)
	}
	offset := time.Duration(r.Int64Range(0, int64(window)-1))
	return end.Add(-offset).Truncate(time.Minute)
}

// NumericString generates a random numeric string of the given length
func (r *Random) NumericString(length int) string {
	const charset = "0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[r.IntN(len(charset))]
	}
	return string(result)
}
