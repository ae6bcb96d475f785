package templates

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/htmlx"
)

const (
	errorNotFoundTitleKey    = "errors.not_found_title"
	errorNotFoundDescKey     = "errors.not_found_desc"
	errorBadRequestTitleKey  = "errors.bad_request_title"
	errorBadRequestDescKey   = "errors.bad_request_desc"
	errorUnavailableTitleKey = "errors.unavailable_title"
	errorUnavailableDescKey  = "errors.unavailable_desc"
	errorInternalTitleKey    = "errors.internal_title"
	errorInternalDescKey     = "errors.internal_desc"
)

// ErrorPageTitle returns the heading for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, errorNotFoundTitleKey)
	case http.StatusBadRequest:
		return T(loc, errorBadRequestTitleKey)
	case http.StatusServiceUnavailable:
		return T(loc, errorUnavailableTitleKey)
	default:
		return T(loc, errorInternalTitleKey)
	}
}

// ErrorPageDescription returns the explanation for an error status.
func ErrorPageDescription(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, errorNotFoundDescKey)
	case http.StatusBadRequest:
		return T(loc, errorBadRequestDescKey)
	case http.StatusServiceUnavailable:
		return T(loc, errorUnavailableDescKey)
	default:
		return T(loc, errorInternalDescKey)
	}
}

// ErrorState renders an error heading and description.
func ErrorState(title, description string) templ.Component {
	return htmlx.Component(htmlx.RawElement("div",
		htmlx.Element("h1", title, htmlx.A("id", "section_0"))+htmlx.Element("p", description),
		htmlx.A("class", "content error-page"),
	))
}
