// Package recommend turns a selection of movies into a ranked list of
// tracks.
package recommend

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/crosstune/internal/domain/model"
	"github.com/okian/crosstune/internal/domain/profile"
	"github.com/okian/crosstune/internal/domain/ranking"
	"github.com/okian/crosstune/internal/domain/vector"
)

// Catalog is the read-only view the service needs.
type Catalog interface {
	profile.Resolver
	LookupMovie(title string) (model.Movie, error)
	Track(i int) (model.Track, error)
	Tracks() int
	TrackVectors() *vector.Matrix
}

// Result is one recommended track.
type Result struct {
	Track model.Track
	Score float64
	Rank  int // 1-based
}

// Service validates requests and composes profile building with ranking.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	catalog Catalog
	builder *profile.Builder
	ranker  ranking.Ranker
	bounds  Bounds
}

// New returns a Service over catalog.
func New(catalog Catalog, opts ...Option) (*Service, error) {
	s := &Service{
		catalog: catalog,
		builder: profile.NewBuilder(catalog),
		ranker:  ranking.NewBruteForce(),
		bounds:  DefaultBounds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.bounds.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidBounds, s.bounds)
	}
	return s, nil
}

// Bounds returns the request bounds in effect.
func (s *Service) Bounds() Bounds { return s.bounds }

// Recommend returns the k tracks closest to the mean of the selected
// movies. Selection size, k and titles are all validated before any vector
// math runs.
func (s *Service) Recommend(ctx context.Context, titles []string, k int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := len(titles); n < s.bounds.MinSelection || n > s.bounds.MaxSelection {
		return nil, fmt.Errorf("%w: got %d, want %d..%d",
			ErrInvalidSelection, n, s.bounds.MinSelection, s.bounds.MaxSelection)
	}
	if k < s.bounds.MinK || k > s.bounds.MaxK {
		return nil, fmt.Errorf("%w: %d outside %d..%d", ErrInvalidK, k, s.bounds.MinK, s.bounds.MaxK)
	}
	if k > s.catalog.Tracks() {
		return nil, fmt.Errorf("%w: %d exceeds catalog of %d tracks", ErrInvalidK, k, s.catalog.Tracks())
	}

	rows, err := s.builder.Resolve(titles)
	if err != nil {
		return nil, err
	}
	p, err := s.builder.FromRows(rows)
	if err != nil {
		return nil, err
	}

	ranked, err := s.ranker.Rank(p, s.catalog.TrackVectors(), k)
	if err != nil {
		return nil, err
	}

	out := make([]Result, len(ranked))
	for i, r := range ranked {
		track, err := s.catalog.Track(r.Index)
		if err != nil {
			return nil, err
		}
		out[i] = Result{Track: track, Score: r.Score, Rank: i + 1}
	}
	return out, nil
}

// ProfileGenres returns the sorted, de-duplicated union of genres across
// the selected movies.
func (s *Service) ProfileGenres(titles []string) ([]string, error) {
	seen := make(map[string]struct{})
	out := []string{}
	for _, title := range titles {
		m, err := s.catalog.LookupMovie(title)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrUnknownMovie, title, err)
		}
		for _, g := range m.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	slices.Sort(out)
	return out, nil
}
