package router

import (
	"github.com/oksasatya/go-user-management/internal/container"
	"github.com/oksasatya/go-user-management/internal/router/modules"
)

// InitModules registers all feature modules against the registry, wired from
// the composition root. Called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	r.Add(modules.NewUserModule(c.UserHandler))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
