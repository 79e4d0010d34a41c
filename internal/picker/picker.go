// Package picker draws uniformly random indices for winner selection.
package picker

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_picker.go github.com/KirkDiggler/mysterybox/internal/picker Picker

// Picker draws a random index
type Picker interface {
	// Intn returns a uniformly random index in [0, n). n must be positive.
	Intn(n int) int
}

// Random is a Picker backed by math/rand
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random picker
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniformly random index in [0, n), or 0 when n is not positive
func (r *Random) Intn(n int) int {
	if n <= 1 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}
