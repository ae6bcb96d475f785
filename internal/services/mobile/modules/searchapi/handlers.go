package searchapi

import (
	"net/http"

	apperrors "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/errors"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/httpx"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleSearchParams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	feature := query.Get(featureParam)
	resp, err := h.service.extend(feature, fragmentFromQuery(query))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		message := http.StatusText(status)
		if key := apperrors.LocalizationKey(err); key != "" {
			tag, _ := mobilei18n.ResolveTag(r)
			message = mobilei18n.Printer(tag).Sprintf(key, feature)
		}
		_ = httpx.WriteJSONError(w, status, message)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
