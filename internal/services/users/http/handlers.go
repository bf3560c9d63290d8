// Package http provides the users command-surface HTTP transport (§6.2)
package http

import (
	stdhttp "net/http"

	"worklog/internal/modkit/httpkit"
	"worklog/internal/services/users/domain"
	svc "worklog/internal/services/users/service"
)

// Register mounts users endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RegisterUserInput](r, "/register", h.register)
	httpkit.PostJSON[findInput](r, "/find", h.find)
	httpkit.PostJSON[getInput](r, "/get", h.get)
	httpkit.PostJSON[listInput](r, "/list", h.list)
	httpkit.PostJSON[domain.SetUTCOffsetInput](r, "/set-utc-offset", h.setUTCOffset)
	httpkit.PostJSON[domain.SetCapsInput](r, "/set-caps", h.setCaps)
	httpkit.PostJSON[domain.SetLunchReminderInput](r, "/set-lunch-reminder", h.setLunchReminder)
	httpkit.PostJSON[domain.SetEndOfDayReminderInput](r, "/set-end-of-day-reminder", h.setEndOfDayReminder)
	httpkit.PostJSON[domain.SetTargetsInput](r, "/set-targets", h.setTargets)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /users/register Users registerUser
// @Summary Register a new user by consuming a pending mnemonic
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.RegisterUserInput true "registration"
// @Success 200 {object} domain.User "ok"
// @Router /users/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterUserInput) (any, error) {
	return h.svc.RegisterUser(r.Context(), in)
}

type findInput struct {
	Provider   string `json:"provider" validate:"required"`
	ExternalID string `json:"external_id" validate:"required"`
}

// swagger:route POST /users/find Users findUser
// @Summary Resolve a user from a (provider, external id) pair
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body findInput true "identity"
// @Success 200 {object} domain.User "ok"
// @Router /users/find [post]
func (h *handlers) find(r *stdhttp.Request, in findInput) (any, error) {
	u, err := h.svc.FindByExternalIdentity(r.Context(), in.Provider, in.ExternalID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return map[string]any{"user": nil}, nil
	}
	return u, nil
}

type getInput struct {
	UserID string `json:"user_id" validate:"required"`
}

// swagger:route POST /users/get Users getUser
// @Summary Fetch a user by id
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body getInput true "user"
// @Success 200 {object} domain.User "ok"
// @Router /users/get [post]
func (h *handlers) get(r *stdhttp.Request, in getInput) (any, error) {
	u, err := h.svc.Get(r.Context(), in.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return map[string]any{"user": nil}, nil
	}
	return u, nil
}

type listInput struct{}

// swagger:route POST /users/list Users listUsers
// @Summary List every registered user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body listInput true "empty"
// @Success 200 {array} domain.User "ok"
// @Router /users/list [post]
func (h *handlers) list(r *stdhttp.Request, _ listInput) (any, error) {
	return h.svc.ListAll(r.Context())
}

// swagger:route POST /users/set-utc-offset Users setUTCOffset
// @Summary Mutate a user's UTC offset
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.SetUTCOffsetInput true "offset"
// @Success 204 "ok"
// @Router /users/set-utc-offset [post]
func (h *handlers) setUTCOffset(r *stdhttp.Request, in domain.SetUTCOffsetInput) (any, error) {
	return nil, h.svc.SetUTCOffset(r.Context(), in)
}

// swagger:route POST /users/set-caps Users setCaps
// @Summary Mutate a user's per-state auto-shutdown caps
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.SetCapsInput true "caps"
// @Success 204 "ok"
// @Router /users/set-caps [post]
func (h *handlers) setCaps(r *stdhttp.Request, in domain.SetCapsInput) (any, error) {
	return nil, h.svc.SetCaps(r.Context(), in)
}

// swagger:route POST /users/set-lunch-reminder Users setLunchReminder
// @Summary Mutate a user's lunch-reminder local time
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.SetLunchReminderInput true "reminder"
// @Success 204 "ok"
// @Router /users/set-lunch-reminder [post]
func (h *handlers) setLunchReminder(r *stdhttp.Request, in domain.SetLunchReminderInput) (any, error) {
	return nil, h.svc.SetLunchReminder(r.Context(), in)
}

// swagger:route POST /users/set-end-of-day-reminder Users setEndOfDayReminder
// @Summary Mutate a user's end-of-day-reminder local time
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.SetEndOfDayReminderInput true "reminder"
// @Success 204 "ok"
// @Router /users/set-end-of-day-reminder [post]
func (h *handlers) setEndOfDayReminder(r *stdhttp.Request, in domain.SetEndOfDayReminderInput) (any, error) {
	return nil, h.svc.SetEndOfDayReminder(r.Context(), in)
}

// swagger:route POST /users/set-targets Users setTargets
// @Summary Mutate a user's daily target hours and forgot-shutdown threshold
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body domain.SetTargetsInput true "targets"
// @Success 204 "ok"
// @Router /users/set-targets [post]
func (h *handlers) setTargets(r *stdhttp.Request, in domain.SetTargetsInput) (any, error) {
	return nil, h.svc.SetTargets(r.Context(), in)
}
