package ranking

import "errors"

// Sentinel errors for ranking.
var (
	ErrInvalidK          = errors.New("invalid k")
	ErrDimensionMismatch = errors.New("profile dimension does not match candidates")
)
