// Package vector implements the sparse vectors shared by movies, tracks and
// taste profiles, and the similarity math over them.
package vector

import (
	"fmt"
	"math"
)

// Sparse is a fixed-dimension vector storing only non-zero components.
// Indices are strictly increasing and within [0, Dim). Values are aligned
// with Indices. A Sparse is treated as immutable once built.
type Sparse struct {
	Dim     int
	Indices []int
	Values  []float64
}

// New validates and builds a sparse vector. The slices are not copied.
func New(dim int, indices []int, values []float64) (Sparse, error) {
	if dim < 0 {
		return Sparse{}, fmt.Errorf("%w: negative dimension %d", ErrInvalidVector, dim)
	}
	if len(indices) != len(values) {
		return Sparse{}, fmt.Errorf("%w: %d indices for %d values", ErrInvalidVector, len(indices), len(values))
	}
	prev := -1
	for _, idx := range indices {
		if idx <= prev || idx >= dim {
			return Sparse{}, fmt.Errorf("%w: index %d out of order or range (dim %d)", ErrInvalidVector, idx, dim)
		}
		prev = idx
	}
	return Sparse{Dim: dim, Indices: indices, Values: values}, nil
}

// Zero returns the zero vector of the given dimension.
func Zero(dim int) Sparse {
	return Sparse{Dim: dim}
}

// FromDense builds a sparse vector from a dense slice, dropping exact zeros.
func FromDense(d []float64) Sparse {
	s := Sparse{Dim: len(d)}
	for i, v := range d {
		if v != 0 {
			s.Indices = append(s.Indices, i)
			s.Values = append(s.Values, v)
		}
	}
	return s
}

// Dense expands the vector into a freshly allocated slice.
func (s Sparse) Dense() []float64 {
	d := make([]float64, s.Dim)
	for i, idx := range s.Indices {
		d[idx] = s.Values[i]
	}
	return d
}

// NNZ returns the number of stored components.
func (s Sparse) NNZ() int { return len(s.Indices) }

// IsZero reports whether every component is zero.
func (s Sparse) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// At returns component i.
func (s Sparse) At(i int) float64 {
	lo, hi := 0, len(s.Indices)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.Indices[mid] < i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.Indices) && s.Indices[lo] == i {
		return s.Values[lo]
	}
	return 0
}

// Norm returns the Euclidean length.
func (s Sparse) Norm() float64 {
	var sum float64
	for _, v := range s.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Normalize returns s scaled to unit length. The zero vector is returned as is.
func (s Sparse) Normalize() Sparse {
	n := s.Norm()
	if n == 0 {
		return s
	}
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		values[i] = v / n
	}
	return Sparse{Dim: s.Dim, Indices: s.Indices, Values: values}
}
