// Package http provides the compliance HTTP transport (spec.md §4.8)
package http

import (
	stdhttp "net/http"

	"worklog/internal/modkit/httpkit"
	"worklog/internal/services/compliance/domain"
	svc "worklog/internal/services/compliance/service"
)

// Register mounts compliance endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.EvaluateInput](r, "/evaluate", h.evaluate)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /compliance/evaluate Compliance evaluateCompliance
// @Summary Evaluate a user's enabled compliance rules over a date range
// @Tags Compliance
// @Accept json
// @Produce json
// @Param payload body domain.EvaluateInput true "range"
// @Success 200 {array} domain.Violation "ok"
// @Router /compliance/evaluate [post]
func (h *handlers) evaluate(r *stdhttp.Request, in domain.EvaluateInput) (any, error) {
	return h.svc.Evaluate(r.Context(), in)
}
