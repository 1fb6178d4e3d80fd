package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/crosstune/internal/domain/types"
)

const maxBodyBytes = 1 << 20

// RecommendationsDependencies defines the interface for recommendation operations.
type RecommendationsDependencies interface {
	Recommend(ctx context.Context, titles []string, k int) (types.Playlist, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps RecommendationsDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationsDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

type recommendRequest struct {
	Titles []string `json:"titles" validate:"required,dive,required"`
	K      int      `json:"k" validate:"gte=0"`
}

type recommendResponse struct {
	RequestID     string                 `json:"request_id"`
	ProfileGenres []string               `json:"profile_genres"`
	Results       []types.Recommendation `json:"results"`
}

// HandleRecommend handles POST /api/v1/recommendations.
func (h *RecommendationsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	playlist, err := h.deps.Recommend(r.Context(), req.Titles, req.K)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		RequestID:     RequestIDFrom(r.Context()),
		ProfileGenres: playlist.ProfileGenres,
		Results:       playlist.Results,
	})
}
