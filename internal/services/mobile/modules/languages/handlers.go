package languages

import (
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langpage"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/weberror"
)

var specialPage = wikititle.MustParse("Special:MobileLanguages")

type handlers struct {
	service service
	shell   *pagerender.Shell
	metrics *metrics.Recorder
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, shell: deps.Shell, metrics: deps.Metrics}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "")
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, r.PathValue("page"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.shell)
}

func (h handlers) serve(w http.ResponseWriter, r *http.Request, pageName string) {
	tag, _ := mobilei18n.ResolveTag(r)
	loc := mobilei18n.Printer(tag)

	page, outcome, err := h.service.loadPage(r.Context(), loc, pageName)
	h.metrics.PageRendered(outcome)
	var notFound *langpage.NotFoundError
	switch {
	case errors.As(err, &notFound):
		weberror.WritePage(w, r, h.shell, http.StatusNotFound, notFound.Title, notFound.Description)
		return
	case err != nil:
		log.Printf("languages page failed page=%q err=%v", pageName, err)
		weberror.WriteModuleError(w, r, err, h.shell)
		return
	}

	err = pagerender.WriteModulePage(w, r, h.shell, pagerender.ModulePage{
		Title:     page.Title,
		WikiTitle: pageTitle(pageName),
		Fragment:  page.Content,
	})
	if err != nil {
		log.Printf("render languages page page=%q err=%v", pageName, err)
		weberror.WriteAppError(w, r, http.StatusInternalServerError, h.shell)
	}
}

// pageTitle is the special page title the footer links point at.
func pageTitle(pageName string) wikititle.Title {
	if title, err := wikititle.Parse(specialPage.PrefixedText() + "/" + pageName); err == nil {
		return title
	}
	return specialPage
}
