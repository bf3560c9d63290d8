// Package module wires the reminder supervisor for the worker binary
package module

import (
	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"

	holidaysdom "worklog/internal/services/holidays/domain"
	notifydom "worklog/internal/services/notify/domain"
	remindersvc "worklog/internal/services/reminder/service"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Module is a worker-only module: no HTTP routes, just a Worker port
type Module struct {
	svc *remindersvc.Svc
}

// New constructs the reminder module. holidays is the holidays module's
// OnHolidayLookup port, injected so the supervisor can skip a user's
// reminders on their time off without importing the holidays service's
// concrete type
func New(deps modkit.Deps, holidays holidaysdom.OnHolidayLookup, sink notifydom.Sink, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.CheckInterval != 0 {
		opts.CheckInterval = overrides.CheckInterval
	}
	svc := remindersvc.New(deps.PG, usersrepo.NewPG(), trackingrepo.NewPG(), holidays, sink, remindersvc.Config{
		CheckInterval: opts.CheckInterval,
	})
	return &Module{svc: svc}
}

// Ports returns the module ports (Worker)
func (m *Module) Ports() any { return Ports{Worker: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return "reminder" }

// MountRoutes mounts no HTTP routes; this is a worker-only module
func (m *Module) MountRoutes(_ httpkit.Router) {}
