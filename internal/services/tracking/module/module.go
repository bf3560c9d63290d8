// Package module wires the tracking service into the API using modkit
package module

import (
	"net/http"

	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"
	str "worklog/internal/platform/strings"

	trackinghttp "worklog/internal/services/tracking/http"
	trackingrepo "worklog/internal/services/tracking/repo"
	trackingsvc "worklog/internal/services/tracking/service"
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

	svc trackingsvc.Service
}

// New constructs a tracking module. users is the trackingsvc.UserOffsetLookup
// (normally the users module's service) since the tracking service does not
// own the Users table
func New(deps modkit.Deps, users trackingsvc.UserOffsetLookup, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tracking"), modkit.WithPrefix("/tracking")}, opts...)...)

	opts2 := FromConfig(deps.Cfg)

	repoBinder := trackingrepo.NewPG()
	svc := trackingsvc.New(deps.PG, repoBinder, users, trackingsvc.Config{MaxMinuteOffset: opts2.MaxMinuteOffset})

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
		trackinghttp.Register(r, m.svc)
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
