package public

import (
	"net/http"

	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

// Module provides the health, metrics and fallback routes.
type Module struct{}

// New returns a public module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires public route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
