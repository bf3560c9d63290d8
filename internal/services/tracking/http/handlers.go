// Package http provides the tracking command-surface HTTP transport (§6.2)
package http

import (
	stdhttp "net/http"
	"time"

	"worklog/internal/modkit/httpkit"
	"worklog/internal/services/tracking/domain"
	svc "worklog/internal/services/tracking/service"
)

// Register mounts tracking endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RecordStateChangeInput](r, "/state", h.recordStateChange)
	httpkit.PostJSON[activeInput](r, "/active", h.active)
	httpkit.PostJSON[rangeInput](r, "/sessions", h.sessionsInRange)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /tracking/state Tracking recordStateChange
// @Summary Record a state-change command (commute, work, lunch)
// @Tags Tracking
// @Accept json
// @Produce json
// @Param payload body domain.RecordStateChangeInput true "command"
// @Success 200 {object} domain.RecordStateChangeResult "ok"
// @Router /tracking/state [post]
func (h *handlers) recordStateChange(r *stdhttp.Request, in domain.RecordStateChangeInput) (any, error) {
	return h.svc.RecordStateChange(r.Context(), in)
}

// activeInput identifies which user's active session to fetch
type activeInput struct {
	UserID string `json:"user_id" validate:"required"`
}

// swagger:route POST /tracking/active Tracking trackingActive
// @Summary Fetch a user's active session, if any
// @Tags Tracking
// @Accept json
// @Produce json
// @Param payload body activeInput true "user"
// @Success 200 {object} domain.Session "ok"
// @Router /tracking/active [post]
func (h *handlers) active(r *stdhttp.Request, in activeInput) (any, error) {
	sess, err := h.svc.ActiveSession(r.Context(), in.UserID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return map[string]any{"active": nil}, nil
	}
	return sess, nil
}

// rangeInput scopes a sessions query to a user and a half-open UTC window
type rangeInput struct {
	UserID string    `json:"user_id" validate:"required"`
	From   time.Time `json:"from" validate:"required"`
	To     time.Time `json:"to" validate:"required,gtfield=From"`
}

// swagger:route POST /tracking/sessions Tracking trackingSessions
// @Summary List a user's sessions in a UTC window
// @Tags Tracking
// @Accept json
// @Produce json
// @Param payload body rangeInput true "window"
// @Success 200 {array} domain.Session "ok"
// @Router /tracking/sessions [post]
func (h *handlers) sessionsInRange(r *stdhttp.Request, in rangeInput) (any, error) {
	return h.svc.SessionsInRange(r.Context(), in.UserID, in.From, in.To)
}
