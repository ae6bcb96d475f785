package searchapi

import (
	"net/http"

	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

// Module serves the search parameters used by the mobile search gateways.
type Module struct{}

// New returns a search API module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "searchapi" }

// Mount wires search API route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(deps)
	h := newHandlers(svc)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
