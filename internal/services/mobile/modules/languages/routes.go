package languages

import (
	"net/http"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.MobileLanguages, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.MobileLanguagesPrefix+"{page...}", h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.WikiPrefix+"{rest...}", h.handleNotFound)
}
