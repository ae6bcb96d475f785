package languages

import (
	"net/http"

	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

// Module serves Special:MobileLanguages.
type Module struct{}

// New returns a languages module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "languages" }

// Mount wires languages route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(deps)
	h := newHandlers(svc, deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.WikiPrefix, Handler: mux}, nil
}
