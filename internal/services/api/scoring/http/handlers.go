// Package http provides the admin scoring weights endpoints
package http

import (
	stdhttp "net/http"

	"interestd/internal/modkit/httpkit"
	pnet "interestd/internal/platform/net"
	"interestd/internal/platform/net/middleware"
	"interestd/internal/services/scoring/domain"
)

// WeightsInput is the PUT body; every field is required
type WeightsInput struct {
	Open       *int `json:"open"       validate:"required,min=0,max=10" example:"1"`
	Read       *int `json:"read"       validate:"required,min=0,max=10" example:"2"`
	Interested *int `json:"interested" validate:"required,min=0,max=10" example:"1"`
}

func (in WeightsInput) weights() domain.Weights {
	return domain.Weights{Open: *in.Open, Read: *in.Read, Interested: *in.Interested}
}

// Register mounts the weights routes behind bearer auth
// trainers and admins may read, only admins may write
func Register(r httpkit.Router, admin domain.AdminPort, auth middleware.AuthPort) {
	h := &handlers{admin: admin}
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		pr.Group(func(rd httpkit.Router) {
			rd.Use(httpkit.RequireRole(pnet.RoleTrainer, pnet.RoleAdmin))
			httpkit.Get(rd, "/scoring", h.get)
		})
		pr.Group(func(wr httpkit.Router) {
			wr.Use(httpkit.RequireRole(pnet.RoleAdmin))
			httpkit.PutJSON[WeightsInput](wr, "/scoring", h.put)
		})
	})
}

type handlers struct{ admin domain.AdminPort }

// swagger:route GET /admin/scoring Admin adminScoringGet
// @Summary Current scoring weights
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Snapshot "ok"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Router /admin/scoring [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.admin.Get(r.Context())
}

// swagger:route PUT /admin/scoring Admin adminScoringPut
// @Summary Replace the scoring weights
// @Description Each weight is an integer in [0,10]; invalid input leaves the stored weights untouched
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body WeightsInput true "Weights"
// @Success 200 {object} domain.Snapshot "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Router /admin/scoring [put]
func (h *handlers) put(r *stdhttp.Request, in WeightsInput) (any, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.admin.Set(r.Context(), in.weights(), user)
}
