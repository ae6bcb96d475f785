package app

import module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"

// Config captures the composition inputs for the mobile root handler.
type Config struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}
