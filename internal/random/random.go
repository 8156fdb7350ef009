package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness the round logic needs: a uniform shuffle of the
// starter pool and a uniform pick from the bonus pool
type Source interface {
	// Shuffle permutes n elements using swap
	Shuffle(n int, swap func(i, j int))

	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Rand provides seedable randomness
type Rand struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for reproducible games
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Rand {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Rand{
		random: random,
	}
}

// Shuffle performs a Fisher-Yates shuffle
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.random.Shuffle(n, swap)
}

// Intn returns a uniform value in [0, n); n < 1 yields 0
func (r *Rand) Intn(n int) int {
	if n < 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}
