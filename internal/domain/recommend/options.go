package recommend

import (
	"github.com/okian/crosstune/internal/domain/ranking"
)

// Bounds limits the size of a request.
type Bounds struct {
	MinSelection int
	MaxSelection int
	MinK         int
	MaxK         int
}

// DefaultBounds allows 1..5 selected movies and 10..30 results.
func DefaultBounds() Bounds {
	return Bounds{MinSelection: 1, MaxSelection: 5, MinK: 10, MaxK: 30}
}

func (b Bounds) valid() bool {
	return b.MinSelection >= 1 && b.MaxSelection >= b.MinSelection &&
		b.MinK >= 1 && b.MaxK >= b.MinK
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBounds overrides the request bounds.
func WithBounds(b Bounds) Option {
	return func(s *Service) {
		s.bounds = b
	}
}

// WithRanker replaces the default brute force ranker.
func WithRanker(r ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}
