package modules

import (
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/modules/languages"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/modules/public"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/modules/searchapi"
)

// DefaultPublicModules returns the stable mobile modules.
func DefaultPublicModules() []Module {
	return []Module{
		public.New(),
		languages.New(),
		searchapi.New(),
	}
}
