package public

import (
	"net/http"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	if h.metrics != nil {
		mux.Handle(http.MethodGet+" "+routepath.Metrics, h.metrics)
	}
	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
