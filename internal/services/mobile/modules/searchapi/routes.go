package searchapi

import (
	"net/http"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SearchParams, h.handleSearchParams)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIPrefix+"{rest...}", h.handleNotFound)
}
