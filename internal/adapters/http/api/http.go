// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/okian/crosstune/internal/adapters/http/swagger"
	"github.com/okian/crosstune/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Recommend(ctx context.Context, titles []string, k int) (types.Playlist, error)
	SampleTitles(ctx context.Context, n int) ([]string, error)
	Movie(ctx context.Context, title string) (types.Movie, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	recommendationsHandler *RecommendationsHandler
	moviesHandler          *MoviesHandler

	rateLimitPerMinute int
	requestTimeout     time.Duration
	defaultSampleSize  int
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, ready ReadinessProbe, opts ...Option) *Server {
	s := &Server{
		rateLimitPerMinute: 120,
		requestTimeout:     10 * time.Second,
		defaultSampleSize:  10,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler(ready)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.recommendationsHandler = NewRecommendationsHandler(deps)
	s.moviesHandler = NewMoviesHandler(deps, s.defaultSampleSize)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	swagger.Register(r)

	r.Route("/api/v1", func(r chi.Router) {
		if s.rateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.rateLimitPerMinute, time.Minute))
		}
		r.Use(middleware.Timeout(s.requestTimeout))

		r.Post("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleRecommend, "recommendations"))
		r.Get("/movies", MetricsMiddleware(s.moviesHandler.HandleGetMovie, "movies"))
		r.Get("/movies/sample", MetricsMiddleware(s.moviesHandler.HandleSample, "movies_sample"))
	})
}

// Router returns a chi router with the common middleware stack and all
// routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	s.Register(r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps err to a status and writes it.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		// Do not leak internals.
		writeError(w, status, code, nil)
		return
	}
	writeError(w, status, code, err)
}
