// Package module wires the credentials service (mnemonic issuance + the
// credential reaper) into both the API and worker binaries
package module

import (
	"context"
	"net/http"

	modkit "worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"
	str "worklog/internal/platform/strings"

	credentialsdom "worklog/internal/services/credentials/domain"
	credentialshttp "worklog/internal/services/credentials/http"
	credentialsrepo "worklog/internal/services/credentials/repo"
	credentialssvc "worklog/internal/services/credentials/service"
	userssvc "worklog/internal/services/users/service"
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

	svc *credentialssvc.Svc
}

// New constructs a credentials module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("credentials"), modkit.WithPrefix("/credentials")}, opts...)...)

	cfgOpts := FromConfig(deps.Cfg)
	if overrides.MnemonicTTL != 0 {
		cfgOpts.MnemonicTTL = overrides.MnemonicTTL
	}
	if overrides.ReapInterval != 0 {
		cfgOpts.ReapInterval = overrides.ReapInterval
	}

	svc := credentialssvc.New(deps.PG, credentialsrepo.NewPG(), credentialssvc.Config{
		MnemonicTTL:  cfgOpts.MnemonicTTL,
		ReapInterval: cfgOpts.ReapInterval,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc, Worker: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		credentialshttp.Register(r, m.svc)
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

// consumerAdapter bridges the credentials service's domain.Consumption return
// type to the users service's CredentialConsumer port
type consumerAdapter struct{ svc credentialsdom.ServicePort }

// NewConsumerAdapter returns an adapter satisfying the users service's
// CredentialConsumer port over this module's credentials service
func NewConsumerAdapter(svc credentialsdom.ServicePort) userssvc.CredentialConsumer {
	return consumerAdapter{svc: svc}
}

// ConsumeMnemonic adapts domain.Consumption to the narrower shape registerUser needs
func (a consumerAdapter) ConsumeMnemonic(ctx context.Context, phrase string) (userssvc.MnemonicConsumption, error) {
	c, err := a.svc.ConsumeMnemonic(ctx, phrase)
	if err != nil {
		return userssvc.MnemonicConsumption{}, err
	}
	return userssvc.MnemonicConsumption{GrantAdmin: c.GrantAdmin}, nil
}

// ValidateMnemonic adapts the read-only check registerUser runs before it
// creates a user, so the mnemonic is only consumed once that insert succeeds
func (a consumerAdapter) ValidateMnemonic(ctx context.Context, phrase string) (userssvc.MnemonicConsumption, error) {
	c, err := a.svc.ValidateMnemonic(ctx, phrase)
	if err != nil {
		return userssvc.MnemonicConsumption{}, err
	}
	return userssvc.MnemonicConsumption{GrantAdmin: c.GrantAdmin}, nil
}
