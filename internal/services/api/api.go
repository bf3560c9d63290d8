// Package api wires every HTTP-facing service module into one mounted surface
package api

import (
	"worklog/internal/platform/config"
	"worklog/internal/platform/logger"
	phttp "worklog/internal/platform/net/http"
	"worklog/internal/platform/store"

	"worklog/internal/modkit"
	"worklog/internal/modkit/httpkit"
	"worklog/internal/modkit/module"
	"worklog/internal/modkit/swaggerkit"

	compliancemod "worklog/internal/services/compliance/module"
	credentialsmod "worklog/internal/services/credentials/module"
	holidaysmod "worklog/internal/services/holidays/module"
	trackingmod "worklog/internal/services/tracking/module"
	usersmod "worklog/internal/services/users/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every service module onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		Log: *opt.Logger,
	}

	// credentials is constructed first: registerUser needs its ConsumeMnemonic
	// port, and the worker binary needs its reaper's Run, so this module's
	// shape serves both roles
	credentials := credentialsmod.New(deps, credentialsmod.Options{})
	credPorts := module.MustPortsOf[credentialsmod.Ports](credentials)

	users := usersmod.New(deps, credentialsmod.NewConsumerAdapter(credPorts.Service))
	usersPorts := module.MustPortsOf[usersmod.Ports](users)

	tracking := trackingmod.New(deps, usersPorts.Service)
	trackingPorts := module.MustPortsOf[trackingmod.Ports](tracking)

	compliance := compliancemod.New(deps, trackingPorts.Service)
	holidays := holidaysmod.New(deps)

	mods := []module.Module{
		credentials,
		users,
		tracking,
		compliance,
		holidays,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
