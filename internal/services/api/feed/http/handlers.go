// Package http provides the personalized feed ranking endpoint
package http

import (
	stdhttp "net/http"

	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/net/middleware"
	"interestd/internal/services/ranking/domain"
)

// RankInput is the candidate list to reorder for the caller
type RankInput struct {
	Candidates []domain.Candidate `json:"candidates"      validate:"required,min=1,max=1000,dive"`
	Limit      int                `json:"limit,omitempty" validate:"omitempty,min=1,max=1000" example:"20"`
}

// RankOutput is the reordered list
// Ranked is false when the input order was returned untouched
type RankOutput struct {
	Items  []domain.Candidate `json:"items"`
	Ranked bool               `json:"ranked" example:"true"`
}

// Register mounts the feed routes behind bearer auth
func Register(r httpkit.Router, ranker domain.RankerPort, auth middleware.AuthPort) {
	h := &handlers{ranker: ranker}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.PostJSON[RankInput](pr, "/rank", h.rank)
	})
}

type handlers struct{ ranker domain.RankerPort }

// swagger:route POST /feed/rank Feed feedRank
// @Summary Order candidate articles by the caller's interests
// @Description Falls back to the input order when no signal or key is available
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body RankInput true "Candidates"
// @Success 200 {object} RankOutput "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /feed/rank [post]
func (h *handlers) rank(r *stdhttp.Request, in RankInput) (any, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	items, ranked := h.ranker.Rank(r.Context(), user, in.Candidates)
	if in.Limit > 0 && len(items) > in.Limit {
		items = items[:in.Limit]
	}
	return RankOutput{Items: items, Ranked: ranked}, nil
}
