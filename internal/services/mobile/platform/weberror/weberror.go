// Package weberror renders localized error pages for mobile modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	apperrors "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/errors"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/routepath"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/templates"
)

var badTitle = wikititle.MustParse("Special:Badtitle")

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc mobilei18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes the localized error page for statusCode.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, shell *pagerender.Shell) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	tag, _ := mobilei18n.ResolveTag(r)
	loc := mobilei18n.Printer(tag)
	WritePage(w, r, shell, statusCode, templates.ErrorPageTitle(statusCode, loc), templates.ErrorPageDescription(statusCode, loc))
}

// WritePage writes an error page with an already localized title and
// description.
func WritePage(w http.ResponseWriter, r *http.Request, shell *pagerender.Shell, statusCode int, title, description string) {
	if w == nil {
		return
	}
	err := pagerender.WriteModulePage(w, r, shell, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		WikiTitle:  requestTitle(r),
		Fragment:   templates.ErrorState(title, description),
	})
	if err != nil {
		http.Error(w, description, statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response. Statuses
// without an error page get a plain text body.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, shell *pagerender.Shell) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, shell)
		return
	}
	tag, _ := mobilei18n.ResolveTag(r)
	http.Error(w, PublicMessage(mobilei18n.Printer(tag), err), statusCode)
}

// requestTitle is the wiki title named by the request path, or a bad-title
// placeholder.
func requestTitle(r *http.Request) wikititle.Title {
	if r == nil || r.URL == nil {
		return badTitle
	}
	name, ok := strings.CutPrefix(r.URL.Path, routepath.WikiPrefix)
	if !ok {
		return badTitle
	}
	title, err := wikititle.Parse(name)
	if err != nil {
		return badTitle
	}
	return title
}
