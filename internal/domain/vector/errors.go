package vector

import "errors"

// Sentinel errors for vector construction and arithmetic.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmpty             = errors.New("no vectors")
	ErrInvalidVector     = errors.New("invalid sparse vector")
)
