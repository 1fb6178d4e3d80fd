// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/crosstune/internal/adapters/repository"
	"github.com/okian/crosstune/internal/domain/recommend"
	"github.com/okian/crosstune/internal/domain/types"
	"github.com/okian/crosstune/internal/domain/vectorizer"
	"github.com/okian/crosstune/pkg/logger"
	"github.com/okian/crosstune/pkg/metrics"
)

// Service owns the catalog and serves recommendations over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog     *repository.Catalog
	recommender *recommend.Service
	sampler     *repository.Sampler

	// Configuration
	moviesPath       string
	tracksPath       string
	vocabularyPath   string
	strictTitles     bool
	vectorizeWorkers int
	bounds           recommend.Bounds
	sampleSeed       uint64
	sampleSize       int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		moviesPath:       "data/movies_processed.csv",
		tracksPath:       "data/tracks_processed.csv",
		vocabularyPath:   "models/vocabulary.json",
		vectorizeWorkers: runtime.NumCPU(),
		bounds:           recommend.DefaultBounds(),
		sampleSize:       10,
		logger:           nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the vector space and catalog. The service refuses to serve
// until Start has succeeded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommender service...",
		logger.String("movies", s.moviesPath),
		logger.String("tracks", s.tracksPath),
		logger.String("vocabulary", s.vocabularyPath),
	)

	space, err := vectorizer.LoadFile(s.vocabularyPath)
	if err != nil {
		return fmt.Errorf("%w: vocabulary: %w", repository.ErrLoad, err)
	}

	catalog, err := s.loadCatalog(ctx, space)
	if err != nil {
		return err
	}

	recommender, err := recommend.New(catalog, recommend.WithBounds(s.bounds))
	if err != nil {
		return err
	}

	s.catalog = catalog
	s.recommender = recommender
	s.sampler = repository.NewSampler(catalog, s.sampleSeed)
	s.started = true

	s.logger.Info(ctx, "recommender service started",
		logger.Int("movies", catalog.Movies()),
		logger.Int("tracks", catalog.Tracks()),
		logger.Int("dim", catalog.Dim()),
	)
	return nil
}

func (s *Service) loadCatalog(ctx context.Context, space *vectorizer.Space) (*repository.Catalog, error) {
	movies, err := repository.OpenSource(ctx, s.moviesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: movies: %w", repository.ErrLoad, err)
	}
	defer func() { _ = movies.Close() }()

	tracks := movies
	if s.tracksPath != s.moviesPath {
		tracks, err = repository.OpenSource(ctx, s.tracksPath)
		if err != nil {
			return nil, fmt.Errorf("%w: tracks: %w", repository.ErrLoad, err)
		}
		defer func() { _ = tracks.Close() }()
	}

	return repository.Load(ctx, movies, tracks, space,
		repository.WithWorkers(s.vectorizeWorkers),
		repository.WithStrictTitles(s.strictTitles),
		repository.WithLogger(s.logger.Named("catalog")),
	)
}

// Stop releases the catalog. The service can be started again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.catalog = nil
	s.recommender = nil
	s.sampler = nil
	s.started = false
	s.logger.Info(context.Background(), "recommender service stopped")
}

// Ready reports whether Start has completed.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) components() (*repository.Catalog, *recommend.Service, *repository.Sampler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.catalog, s.recommender, s.sampler, nil
}

// Recommend builds a playlist of k tracks for the selected titles.
func (s *Service) Recommend(ctx context.Context, titles []string, k int) (types.Playlist, error) {
	_, rec, _, err := s.components()
	if err != nil {
		return types.Playlist{}, err
	}

	start := time.Now()
	results, err := rec.Recommend(ctx, titles, k)
	if err != nil {
		metrics.RecordRecommendation(outcome(err))
		s.logger.Debug(ctx, "recommendation rejected",
			logger.Strings("titles", titles),
			logger.Int("k", k),
			logger.Error(err),
		)
		return types.Playlist{}, err
	}
	metrics.RecordRecommendationLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordProfileSize(len(titles))

	genres, err := rec.ProfileGenres(titles)
	if err != nil {
		metrics.RecordRecommendation(outcome(err))
		return types.Playlist{}, err
	}
	metrics.RecordRecommendation(metrics.OutcomeOK)

	out := types.Playlist{
		ProfileGenres: genres,
		Results:       make([]types.Recommendation, len(results)),
	}
	for i, r := range results {
		out.Results[i] = types.Recommendation{
			Rank:      r.Rank,
			TrackName: r.Track.Name,
			Artist:    r.Track.Artist,
			Tags:      r.Track.Tags,
			Score:     r.Score,
		}
	}
	return out, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, recommend.ErrUnknownMovie):
		return metrics.OutcomeUnknownMovie
	case errors.Is(err, recommend.ErrInvalidSelection), errors.Is(err, recommend.ErrInvalidK):
		return metrics.OutcomeInvalidRequest
	default:
		return metrics.OutcomeInternalFailure
	}
}

// SampleTitles draws n distinct movie titles for the selection pool.
func (s *Service) SampleTitles(ctx context.Context, n int) ([]string, error) {
	_, _, sampler, err := s.components()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	titles, err := sampler.Sample(n)
	if err != nil {
		return nil, err
	}
	metrics.RecordTitleSample()
	return titles, nil
}

// Movie returns the public view of one movie.
func (s *Service) Movie(_ context.Context, title string) (types.Movie, error) {
	catalog, _, _, err := s.components()
	if err != nil {
		return types.Movie{}, err
	}
	m, err := catalog.LookupMovie(title)
	if err != nil {
		return types.Movie{}, err
	}
	out := types.Movie{Title: m.Title, Genres: m.Genres}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	if m.Year > 0 {
		year := m.Year
		out.Year = &year
	}
	return out, nil
}

// DefaultSampleSize is the pool size used when a caller does not ask for one.
func (s *Service) DefaultSampleSize() int {
	return s.sampleSize
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"minSelection":     s.bounds.MinSelection,
		"maxSelection":     s.bounds.MaxSelection,
		"minK":             s.bounds.MinK,
		"maxK":             s.bounds.MaxK,
		"vectorizeWorkers": s.vectorizeWorkers,
		"strictTitles":     s.strictTitles,
	}

	if s.started {
		stats["movies"] = s.catalog.Movies()
		stats["distinctTitles"] = s.catalog.Titles()
		stats["tracks"] = s.catalog.Tracks()
		stats["vocabularySize"] = s.catalog.Dim()
		stats["duplicateTitles"] = s.catalog.Duplicates()
	}

	return stats
}
