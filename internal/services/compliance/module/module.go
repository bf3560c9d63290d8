// Package module wires the compliance service into the API using modkit
package module

import (
	"context"
	"net/http"
	"time"

	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"
	str "worklog/internal/platform/strings"

	compliancedom "worklog/internal/services/compliance/domain"
	compliancehttp "worklog/internal/services/compliance/http"
	compliancerepo "worklog/internal/services/compliance/repo"
	compliancesvc "worklog/internal/services/compliance/service"
	trackingdom "worklog/internal/services/tracking/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc compliancesvc.Service
}

// sessionsAdapter adapts the tracking service's ServicePort into this
// service's narrower SessionsLookup port, avoiding a dependency on the
// tracking repo package
type sessionsAdapter struct{ tracking trackingdom.ServicePort }

func (a sessionsAdapter) SessionsInRange(ctx context.Context, userID string, fromUTC, toUTC time.Time) ([]compliancedom.SessionView, error) {
	sessions, err := a.tracking.SessionsInRange(ctx, userID, fromUTC, toUTC)
	if err != nil {
		return nil, err
	}
	out := make([]compliancedom.SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, compliancedom.SessionView{
			State:      s.State,
			StartedAt:  s.StartedAt,
			EndedAt:    s.EndedAt,
			CommuteDir: s.CommuteDir,
		})
	}
	return out, nil
}

// New constructs a compliance module. tracking must be the tracking module's
// ServicePort since compliance evaluates sessions but does not own that table
func New(deps modkit.Deps, tracking trackingdom.ServicePort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("compliance"), modkit.WithPrefix("/compliance")}, opts...)...)

	repoBinder := compliancerepo.NewPG()
	svc := compliancesvc.New(deps.PG, repoBinder, sessionsAdapter{tracking: tracking})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		compliancehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
