package mobilectx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/httpx"
)

// ToggleView handles requests carrying a mobileaction switch: the choice is
// remembered in a cookie and the client is redirected to the same URL, on
// the matching host, without the switch.
func ToggleView(cfg *Config) httpx.Middleware {
	if cfg == nil {
		cfg = &Config{}
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil || r.URL == nil {
				next.ServeHTTP(w, r)
				return
			}
			action := r.URL.Query().Get(ActionParam)
			switch action {
			case actionViewMobile:
				http.SetCookie(w, &http.Cookie{
					Name:     FormatCookieName,
					Value:    "true",
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
				})
				httpx.WriteRedirect(w, r, cfg.MobileURL(currentURL(r)))
			case actionViewDesktop:
				http.SetCookie(w, &http.Cookie{
					Name:     FormatCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					SameSite: http.SameSiteLaxMode,
				})
				httpx.WriteRedirect(w, r, cfg.DesktopURL(currentURL(r)))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// currentURL is the absolute request URL without the view switch.
func currentURL(r *http.Request) string {
	query := r.URL.Query()
	query.Del(ActionParam)
	query.Del(FormatParam)

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "https" || forwarded == "http" {
		scheme = forwarded
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: query.Encode(),
	}
	return u.String()
}
