// Package module wires the auto-shutdown supervisor for the worker binary
package module

import (
	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"

	autoshutdownsvc "worklog/internal/services/autoshutdown/service"
	notifydom "worklog/internal/services/notify/domain"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Module is a worker-only module: no HTTP routes, just a Worker port
type Module struct {
	svc *autoshutdownsvc.Svc
}

// New constructs the auto-shutdown module
func New(deps modkit.Deps, sink notifydom.Sink, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.CheckInterval != 0 {
		opts.CheckInterval = overrides.CheckInterval
	}
	svc := autoshutdownsvc.New(deps.PG, trackingrepo.NewPG(), usersrepo.NewPG(), sink, autoshutdownsvc.Config{
		CheckInterval: opts.CheckInterval,
	})
	return &Module{svc: svc}
}

// Ports returns the module ports (Worker)
func (m *Module) Ports() any { return Ports{Worker: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return "autoshutdown" }

// MountRoutes mounts no HTTP routes; this is a worker-only module
func (m *Module) MountRoutes(_ httpkit.Router) {}
