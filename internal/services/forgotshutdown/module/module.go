// Package module wires the forgot-shutdown supervisor for the worker binary
package module

import (
	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"

	forgotshutdownsvc "worklog/internal/services/forgotshutdown/service"
	notifydom "worklog/internal/services/notify/domain"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Module is a worker-only module: no HTTP routes, just a Worker port
type Module struct {
	svc *forgotshutdownsvc.Svc
}

// New constructs the forgot-shutdown module
func New(deps modkit.Deps, sink notifydom.Sink, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.CheckInterval != 0 {
		opts.CheckInterval = overrides.CheckInterval
	}
	if overrides.ThresholdPercentDefault != 0 {
		opts.ThresholdPercentDefault = overrides.ThresholdPercentDefault
	}
	if overrides.HistoryWindow != 0 {
		opts.HistoryWindow = overrides.HistoryWindow
	}
	svc := forgotshutdownsvc.New(deps.PG, trackingrepo.NewPG(), usersrepo.NewPG(), sink, forgotshutdownsvc.Config{
		CheckInterval:           opts.CheckInterval,
		ThresholdPercentDefault: opts.ThresholdPercentDefault,
		HistoryWindow:           opts.HistoryWindow,
	})
	return &Module{svc: svc}
}

// Ports returns the module ports (Worker)
func (m *Module) Ports() any { return Ports{Worker: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return "forgotshutdown" }

// MountRoutes mounts no HTTP routes; this is a worker-only module
func (m *Module) MountRoutes(_ httpkit.Router) {}
