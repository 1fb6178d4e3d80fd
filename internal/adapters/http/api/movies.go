package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/crosstune/internal/domain/types"
)

// MoviesDependencies defines the interface for movie catalog operations.
type MoviesDependencies interface {
	SampleTitles(ctx context.Context, n int) ([]string, error)
	Movie(ctx context.Context, title string) (types.Movie, error)
}

// MoviesHandler serves the selectable movie pool and movie lookups.
type MoviesHandler struct {
	deps        MoviesDependencies
	defaultSize int
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps MoviesDependencies, defaultSize int) *MoviesHandler {
	return &MoviesHandler{deps: deps, defaultSize: defaultSize}
}

type sampleResponse struct {
	Titles []string `json:"titles"`
}

// HandleSample handles GET /api/v1/movies/sample?n=N.
func (h *MoviesHandler) HandleSample(w http.ResponseWriter, r *http.Request) {
	n := h.defaultSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: n must be a non-negative integer", ErrBadRequest))
			return
		}
		n = v
	}

	titles, err := h.deps.SampleTitles(r.Context(), n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if titles == nil {
		titles = []string{}
	}
	writeJSON(w, http.StatusOK, sampleResponse{Titles: titles})
}

// HandleGetMovie handles GET /api/v1/movies?title=T.
func (h *MoviesHandler) HandleGetMovie(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: title is required", ErrBadRequest))
		return
	}

	movie, err := h.deps.Movie(r.Context(), title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}
