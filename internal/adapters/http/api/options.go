package api

import "time"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit caps API requests per client IP per minute. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute >= 0 {
			s.rateLimitPerMinute = perMinute
		}
	}
}

// WithRequestTimeout bounds the time a handler may take.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithDefaultSampleSize sets the pool size used when n is not given.
func WithDefaultSampleSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.defaultSampleSize = n
		}
	}
}
