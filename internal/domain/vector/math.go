package vector

import "fmt"

// Dot returns the inner product of a and b. Both must share a dimension;
// callers check that up front, Dot only walks the stored components.
func Dot(a, b Sparse) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns dot(a,b)/(|a||b|), or 0 when either vector has zero norm.
func Cosine(a, b Sparse) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Mean returns the component-wise arithmetic mean of vs. Components are
// summed in the order given, so callers wanting order independence pass a
// canonical order. Repeated vectors are counted once per occurrence.
func Mean(vs []Sparse) (Sparse, error) {
	if len(vs) == 0 {
		return Sparse{}, ErrEmpty
	}
	dim := vs[0].Dim
	acc := make([]float64, dim)
	for i, v := range vs {
		if v.Dim != dim {
			return Sparse{}, fmt.Errorf("%w: vector %d has dim %d, want %d", ErrDimensionMismatch, i, v.Dim, dim)
		}
		for j, idx := range v.Indices {
			acc[idx] += v.Values[j]
		}
	}
	if len(vs) == 1 {
		return vs[0], nil
	}
	n := float64(len(vs))
	for i := range acc {
		acc[i] /= n
	}
	return FromDense(acc), nil
}
