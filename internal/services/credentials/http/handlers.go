// Package http provides the credentials command-surface HTTP transport (§6.2).
// Mnemonic consumption is not exposed here: it is reached only through the
// users service's registerUser, which owns the registration transaction
package http

import (
	stdhttp "net/http"

	"worklog/internal/modkit/httpkit"
	"worklog/internal/services/credentials/domain"
	svc "worklog/internal/services/credentials/service"
)

// Register mounts credentials endpoints on the given router. Callers are
// expected to gate this route group behind admin authorization middleware;
// mnemonic issuance is an admin-only action (spec.md §3)
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.IssueMnemonicInput](r, "/issue", h.issue)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /credentials/issue Credentials issueMnemonic
// @Summary Issue a one-time registration mnemonic
// @Tags Credentials
// @Accept json
// @Produce json
// @Param payload body domain.IssueMnemonicInput true "issue"
// @Success 200 {object} domain.PendingMnemonic "ok"
// @Router /credentials/issue [post]
func (h *handlers) issue(r *stdhttp.Request, in domain.IssueMnemonicInput) (any, error) {
	return h.svc.IssueMnemonic(r.Context(), in)
}
