// Package routepath holds the HTTP paths served by the mobile service.
package routepath

const (
	Root = "/"

	WikiPrefix            = "/wiki/"
	MobileLanguages       = "/wiki/Special:MobileLanguages"
	MobileLanguagesPrefix = MobileLanguages + "/"

	APIPrefix    = "/api/"
	SearchParams = "/api/search-params"

	Health  = "/healthz"
	Metrics = "/metrics"
)

// MobileLanguagesPage returns the languages page of an encoded title key.
func MobileLanguagesPage(key string) string {
	return MobileLanguagesPrefix + key
}
