package public

import (
	"net/http"

	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/weberror"
)

type handlers struct {
	shell   *pagerender.Shell
	metrics http.Handler
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{shell: deps.Shell, metrics: deps.MetricsHandler}
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.shell)
}
