package vector

import "fmt"

// Matrix is a read-only stack of row vectors with cached norms.
type Matrix struct {
	dim   int
	rows  []Sparse
	norms []float64
}

// NewMatrix builds a matrix over rows, each of which must have dimension dim.
func NewMatrix(dim int, rows []Sparse) (*Matrix, error) {
	norms := make([]float64, len(rows))
	for i, r := range rows {
		if r.Dim != dim {
			return nil, fmt.Errorf("%w: row %d has dim %d, want %d", ErrDimensionMismatch, i, r.Dim, dim)
		}
		norms[i] = r.Norm()
	}
	return &Matrix{dim: dim, rows: rows, norms: norms}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// Dim returns the dimension shared by every row.
func (m *Matrix) Dim() int { return m.dim }

// Row returns row i.
func (m *Matrix) Row(i int) Sparse { return m.rows[i] }

// Norm returns the cached norm of row i.
func (m *Matrix) Norm(i int) float64 { return m.norms[i] }

// CosineRow scores row i against q whose norm is qNorm. Zero norms score 0.
func (m *Matrix) CosineRow(i int, q Sparse, qNorm float64) float64 {
	if qNorm == 0 || m.norms[i] == 0 {
		return 0
	}
	return Dot(m.rows[i], q) / (m.norms[i] * qNorm)
}
