package picker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntn_StaysInRange(t *testing.T) {
	p := New(&Config{Seed: 42})

	for i := 0; i < 1000; i++ {
		v := p.Intn(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}

func TestIntn_DegenerateBounds(t *testing.T) {
	p := New(nil)

	assert.Equal(t, 0, p.Intn(1))
	assert.Equal(t, 0, p.Intn(0))
	assert.Equal(t, 0, p.Intn(-3))
}

func TestIntn_SeedIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestIntn_CoversEveryIndex(t *testing.T) {
	p := New(&Config{Seed: 99})
	seen := make(map[int]bool)

	for i := 0; i < 500; i++ {
		seen[p.Intn(5)] = true
	}

	assert.Len(t, seen, 5)
}

func TestIntn_ConcurrentUse(t *testing.T) {
	p := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = p.Intn(10)
			}
		}()
	}
	wg.Wait()
}
