// Package http provides the key metadata and ingestion endpoints
package http

import (
	stdhttp "net/http"

	"interestd/internal/core/phe"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/net/middleware"
	"interestd/internal/services/ingest/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Keys   *phe.Manager
	Ingest domain.IngestPort
	Auth   middleware.AuthPort
}

// Register mounts the phe routes; public-key is open and score needs a bearer token
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/public-key", h.publicKey)
	httpkit.Protected(r, d.Auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.Request](pr, "/score", h.score)
	})
}

type handlers struct{ deps Deps }

// swagger:route GET /phe/public-key Scoring phePublicKey
// @Summary Public key used to encrypt interest contributions
// @Description Never includes private material; not cacheable
// @Tags Scoring
// @Produce json
// @Success 200 {object} phe.Metadata "ok"
// @Router /phe/public-key [get]
func (h *handlers) publicKey(_ *stdhttp.Request) (any, error) {
	return httpkit.Response{
		Status: stdhttp.StatusOK,
		Body:   h.deps.Keys.Metadata(),
		Header: stdhttp.Header{"Cache-Control": []string{"no-store"}},
	}, nil
}

// swagger:route POST /phe/score Scoring pheScore
// @Summary Ingest engagement events for the caller
// @Description One item or {batch:[...]}; a nonce reused inside its window is rejected
// @Tags Scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.Request true "Item or batch"
// @Success 200 {object} domain.Response "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 409 {object} httpkit.Envelope "replay"
// @Router /phe/score [post]
func (h *handlers) score(r *stdhttp.Request, in domain.Request) (any, error) {
	items, err := in.Items()
	if err != nil {
		return nil, err
	}
	user, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.deps.Ingest.Ingest(r.Context(), user, items)
}
