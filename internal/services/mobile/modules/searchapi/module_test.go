package searchapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/searchparams"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testDeps(rec *metrics.Recorder) module.Dependencies {
	return module.Dependencies{
		Search: &searchparams.Config{
			DisplayWikibaseDescriptions: map[string]bool{"search": true, "nearby": false},
			SearchAPIParams:             searchparams.Params{"redirects": true},
			QueryPropModules:            []string{"pageimages"},
		},
		Metrics: rec,
	}
}

func serve(t *testing.T, deps module.Dependencies, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

type response struct {
	Params map[string]any `json:"params"`
	Query  string         `json:"query"`
	Error  string         `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return resp
}

func TestModuleIDReturnsSearchAPI(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "searchapi" {
		t.Fatalf("ID() = %q, want %q", got, "searchapi")
	}
}

func TestSearchParamsAddsDescriptions(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rr := serve(t, testDeps(metrics.New(reg)), http.MethodGet, "/api/search-params?feature=search&search=dog&uselang=de")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decode(t, rr)
	if want := "prop=pageimages%7Cpageterms&redirects=1&search=dog&wbptterms=description"; resp.Query != want {
		t.Fatalf("query = %q, want %q", resp.Query, want)
	}
	wantProp := []any{"pageimages", "pageterms"}
	if got := resp.Params["prop"]; !reflect.DeepEqual(got, wantProp) {
		t.Fatalf("prop = %#v, want %#v", got, wantProp)
	}
	if _, ok := resp.Params["uselang"]; ok {
		t.Fatal("uselang leaked into the API parameters")
	}

	expected := `
# HELP mobilefrontend_search_params_total Search parameter requests, by feature and outcome.
# TYPE mobilefrontend_search_params_total counter
mobilefrontend_search_params_total{feature="search",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "mobilefrontend_search_params_total"); err != nil {
		t.Fatalf("search metrics: %v", err)
	}
}

func TestSearchParamsWithoutDescriptions(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(nil), http.MethodGet, "/api/search-params?feature=nearby&prop=coordinates")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got, want := decode(t, rr).Query, "prop=coordinates%7Cpageimages&redirects=1"; got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}
}

func TestSearchParamsRejectsUnknownFeature(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(nil), http.MethodGet, "/api/search-params?feature=watchlist")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if got, want := decode(t, rr).Error, `"watchlist" isn't a feature that shows Wikibase descriptions.`; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestRejectedFeaturesShareOneSeries(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	deps := testDeps(metrics.New(reg))
	for _, feature := range []string{"watchlist", "junk1", "junk2", "%20"} {
		if rr := serve(t, deps, http.MethodGet, "/api/search-params?feature="+feature); rr.Code != http.StatusBadRequest {
			t.Fatalf("feature %q status = %d, want %d", feature, rr.Code, http.StatusBadRequest)
		}
	}
	serve(t, deps, http.MethodGet, "/api/search-params?feature=search")

	expected := `
# HELP mobilefrontend_search_params_total Search parameter requests, by feature and outcome.
# TYPE mobilefrontend_search_params_total counter
mobilefrontend_search_params_total{feature="search",outcome="ok"} 1
mobilefrontend_search_params_total{feature="unknown",outcome="invalid_feature"} 4
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "mobilefrontend_search_params_total"); err != nil {
		t.Fatalf("search metrics: %v", err)
	}
}

func TestSearchParamsKeepsRepeatedTerms(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(nil), http.MethodGet, "/api/search-params?feature=search&wbptterms=label&wbptterms=alias")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got, want := decode(t, rr).Params["wbptterms"], "label|alias|description"; got != want {
		t.Fatalf("wbptterms = %v, want %q", got, want)
	}
}

func TestFragmentFromQueryKeepsRepeatedKeys(t *testing.T) {
	t.Parallel()

	got := fragmentFromQuery(map[string][]string{
		"feature": {"search"},
		"prop":    {"info", "extracts"},
		"limit":   {"10"},
	})
	want := searchparams.Params{"prop": []string{"info", "extracts"}, "limit": "10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fragmentFromQuery() = %#v, want %#v", got, want)
	}
}

func TestUnknownAPIPathReturnsJSONNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(nil), http.MethodGet, "/api/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}

func TestPostReturnsMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(nil), http.MethodPost, "/api/search-params?feature=search")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
