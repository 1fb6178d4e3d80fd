// Package profile aggregates selected movie vectors into a taste profile.
package profile

import (
	"fmt"
	"slices"

	"github.com/okian/crosstune/internal/domain/vector"
)

// Resolver maps movie titles to rows of a movie matrix.
type Resolver interface {
	MovieIndex(title string) (int, error)
	MovieVectors() *vector.Matrix
}

// Builder builds taste profiles over one catalog.
type Builder struct {
	catalog Resolver
}

// NewBuilder returns a Builder reading vectors from catalog.
func NewBuilder(catalog Resolver) *Builder {
	return &Builder{catalog: catalog}
}

// Resolve maps every title to its movie row, in input order. The first
// unknown title fails the whole call.
func (b *Builder) Resolve(titles []string) ([]int, error) {
	if len(titles) == 0 {
		return nil, ErrEmptySelection
	}
	rows := make([]int, len(titles))
	for i, title := range titles {
		idx, err := b.catalog.MovieIndex(title)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrUnknownMovie, title, err)
		}
		rows[i] = idx
	}
	return rows, nil
}

// Build returns the component-wise mean of the selected movie vectors.
// Selection order does not affect the result. A title listed twice counts
// twice.
func (b *Builder) Build(titles []string) (vector.Sparse, error) {
	rows, err := b.Resolve(titles)
	if err != nil {
		return vector.Sparse{}, err
	}
	return b.FromRows(rows)
}

// FromRows averages already-resolved movie rows.
func (b *Builder) FromRows(rows []int) (vector.Sparse, error) {
	if len(rows) == 0 {
		return vector.Sparse{}, ErrEmptySelection
	}
	// Summing in row order makes the float result independent of the
	// order titles were picked in.
	sorted := slices.Clone(rows)
	slices.Sort(sorted)

	m := b.catalog.MovieVectors()
	vs := make([]vector.Sparse, len(sorted))
	for i, r := range sorted {
		vs[i] = m.Row(r)
	}
	return vector.Mean(vs)
}
