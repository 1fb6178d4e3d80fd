// Package ranking scores candidate vectors against a profile and keeps the
// top K.
package ranking

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/okian/crosstune/internal/domain/vector"
)

// Scored is a candidate row with its similarity to the profile.
type Scored struct {
	Index int
	Score float64
}

// Ranker returns the k best rows of m for profile, ordered by score
// descending with ties broken by lower row index.
type Ranker interface {
	Rank(profile vector.Sparse, m *vector.Matrix, k int) ([]Scored, error)
}

// before reports whether a ranks ahead of b.
func before(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// worstFirst is a heap whose root is the weakest kept candidate.
type worstFirst []Scored

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return before(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(Scored)) }
func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// BruteForce scores every row with cosine similarity and keeps a bounded
// heap of the best k.
type BruteForce struct{}

// NewBruteForce returns the exhaustive cosine ranker.
func NewBruteForce() *BruteForce { return &BruteForce{} }

// Rank implements Ranker.
func (BruteForce) Rank(profile vector.Sparse, m *vector.Matrix, k int) ([]Scored, error) {
	if k < 1 || k > m.Rows() {
		return nil, fmt.Errorf("%w: %d (candidates %d)", ErrInvalidK, k, m.Rows())
	}
	if profile.Dim != m.Dim() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, profile.Dim, m.Dim())
	}

	pNorm := profile.Norm()
	h := make(worstFirst, 0, k)
	for i := 0; i < m.Rows(); i++ {
		c := Scored{Index: i, Score: m.CosineRow(i, profile, pNorm)}
		if len(h) < k {
			heap.Push(&h, c)
			continue
		}
		if before(c, h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	out := []Scored(h)
	slices.SortFunc(out, func(a, b Scored) int {
		if before(a, b) {
			return -1
		}
		if before(b, a) {
			return 1
		}
		return 0
	})
	return out, nil
}
