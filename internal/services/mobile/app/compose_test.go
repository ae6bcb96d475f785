package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) {
	return m.mount, m.err
}

func status(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/wiki/", Handler: status(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "wiki", Handler: status(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsNilModule(t *testing.T) {
	t.Parallel()

	if _, err := (Composer{}).Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
}

func TestComposeRejectsIncompleteMounts(t *testing.T) {
	t.Parallel()

	tests := map[string]stubModule{
		"missing prefix":  {id: "a", mount: module.Mount{Handler: status(http.StatusOK)}},
		"missing handler": {id: "b", mount: module.Mount{Prefix: "/b/"}},
		"mount error":     {id: "c", err: errors.New("boom")},
	}
	for name, stub := range tests {
		if _, err := (Composer{}).Compose(ComposeInput{Modules: []module.Module{stub}}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestComposeRoutesByLongestPrefix(t *testing.T) {
	t.Parallel()

	h, err := BuildRootHandler(Config{
		Modules: []module.Module{
			stubModule{id: "public", mount: module.Mount{Prefix: "/", Handler: status(http.StatusTeapot)}},
			stubModule{id: "languages", mount: module.Mount{Prefix: "/wiki/", Handler: status(http.StatusNoContent)}},
		},
	})
	if err != nil {
		t.Fatalf("BuildRootHandler() error = %v", err)
	}

	tests := map[string]int{
		"/wiki/Special:MobileLanguages/Dog": http.StatusNoContent,
		"/healthz":                          http.StatusTeapot,
	}
	for path, want := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":       "",
		" api ":  "/api/",
		"/wiki":  "/wiki/",
		"/wiki/": "/wiki/",
		"/":      "/",
	}
	for in, want := range tests {
		if got := normalizePrefix(in); got != want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
