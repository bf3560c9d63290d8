// Package http provides the holidays HTTP transport
package http

import (
	stdhttp "net/http"

	"worklog/internal/modkit/httpkit"
	"worklog/internal/services/holidays/domain"
	svc "worklog/internal/services/holidays/service"
)

// Register mounts holidays endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateHolidayInput](r, "/create", h.create)
	httpkit.PostJSON[listInput](r, "/list", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /holidays/create Holidays createHoliday
// @Summary Add a holiday/vacation/sick date range for a user
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body domain.CreateHolidayInput true "holiday"
// @Success 200 {object} domain.Holiday "ok"
// @Router /holidays/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateHolidayInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

type listInput struct {
	UserID string `json:"user_id" validate:"required"`
}

// swagger:route POST /holidays/list Holidays listHolidays
// @Summary List a user's holiday rows
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body listInput true "user"
// @Success 200 {array} domain.Holiday "ok"
// @Router /holidays/list [post]
func (h *handlers) list(r *stdhttp.Request, in listInput) (any, error) {
	return h.svc.ListForUser(r.Context(), in.UserID)
}
