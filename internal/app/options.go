package service

import (
	"github.com/okian/crosstune/internal/domain/recommend"
	"github.com/okian/crosstune/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMoviesPath sets the movie catalog source.
func WithMoviesPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.moviesPath = path
		}
	}
}

// WithTracksPath sets the track catalog source.
func WithTracksPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.tracksPath = path
		}
	}
}

// WithVocabularyPath sets the vector space artifact path.
func WithVocabularyPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.vocabularyPath = path
		}
	}
}

// WithStrictTitles rejects catalogs with duplicate movie titles.
func WithStrictTitles(strict bool) Option {
	return func(s *Service) {
		s.strictTitles = strict
	}
}

// WithVectorizeWorkers bounds parallel vectorization at load.
func WithVectorizeWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.vectorizeWorkers = n
		}
	}
}

// WithBounds sets the selection and result bounds.
func WithBounds(b recommend.Bounds) Option {
	return func(s *Service) {
		s.bounds = b
	}
}

// WithSampleSeed seeds title sampling. Zero seeds from the clock.
func WithSampleSeed(seed uint64) Option {
	return func(s *Service) {
		s.sampleSeed = seed
	}
}

// WithSampleSize sets the default number of sampled titles.
func WithSampleSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}
