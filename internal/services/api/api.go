// Package api provides the HTTP API for the application
package api

import (
	"herdpulse/internal/platform/config"
	"herdpulse/internal/platform/logger"
	phttp "herdpulse/internal/platform/net/http"
	"herdpulse/internal/platform/store"
	ptime "herdpulse/internal/platform/time"

	"herdpulse/internal/modkit"
	"herdpulse/internal/modkit/httpkit"
	"herdpulse/internal/modkit/module"
	"herdpulse/internal/modkit/swaggerkit"

	alertsmod "herdpulse/internal/services/api/alerts/module"
	analyticsmod "herdpulse/internal/services/api/analytics/module"
	metamod "herdpulse/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Clock         ptime.Clock
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    opt.Store.PG,
		Clock: opt.Clock,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		analyticsmod.New(deps),
		alertsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
