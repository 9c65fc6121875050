package app

import (
	"github.com/mwhitaker/blenny/internal/module"
	"github.com/mwhitaker/blenny/internal/modules/realtime"
	"github.com/mwhitaker/blenny/internal/modules/usermenu"
)

// NewModules creates and returns the list of all active modules for the
// application. This is the single source of truth for which features are
// enabled.
func NewModules(deps Dependencies) []module.Module {

	return []module.Module{
		// Add new application modules here.
		usermenu.New(usermenu.Dependencies{
			Sessions:   deps.Sessions,
			Subscriber: deps.Subscriber,
		}),
		realtime.New(realtime.Dependencies{
			Hub:        deps.Hub,
			Subscriber: deps.Subscriber,
		}),
	}
}
