package repository

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// SampleTitles draws n distinct titles uniformly without replacement.
// rng is not safe for concurrent use; see Sampler.
func (c *Catalog) SampleTitles(n int, rng *rand.Rand) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleSize, n)
	}
	if n > len(c.titles) {
		return nil, fmt.Errorf("%w: want %d titles, have %d", ErrInsufficientCatalog, n, len(c.titles))
	}

	// Partial Fisher-Yates over a copy of the index.
	pool := make([]string, len(c.titles))
	copy(pool, c.titles)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n], nil
}

// Sampler serializes access to one random source over a catalog.
type Sampler struct {
	mu      sync.Mutex
	rng     *rand.Rand
	catalog *Catalog
}

// NewSampler returns a Sampler seeded with seed. A zero seed draws one from
// the clock.
func NewSampler(c *Catalog, seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		catalog: c,
	}
}

// Sample draws n distinct titles.
func (s *Sampler) Sample(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.SampleTitles(n, s.rng)
}
