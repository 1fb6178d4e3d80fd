package repository

import (
	"github.com/okian/crosstune/pkg/logger"
)

// Option applies a configuration option to a catalog load.
type Option func(*loadOptions)

type loadOptions struct {
	workers      int
	strictTitles bool
	log          logger.Logger
}

// WithWorkers bounds the number of goroutines vectorizing rows. Values
// below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *loadOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithStrictTitles makes duplicate movie titles a load error instead of
// keeping the first row.
func WithStrictTitles(strict bool) Option {
	return func(o *loadOptions) {
		o.strictTitles = strict
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l logger.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.log = l
		}
	}
}
