package languages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/footer"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/integration/mwapi"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/mobilectx"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeArticles struct {
	article mwapi.Article
	err     error
	titles  []string
}

func (f *fakeArticles) Article(_ context.Context, title string) (mwapi.Article, error) {
	f.titles = append(f.titles, title)
	return f.article, f.err
}

type fakeNames map[string]string

func (n fakeNames) Name(code string) (string, bool) {
	name, ok := n[code]
	return name, ok
}

var site = wikititle.Site{Server: "https://en.wikipedia.org"}

func testDeps(articles module.ArticleClient, rec *metrics.Recorder) module.Dependencies {
	return module.Dependencies{
		Shell: &pagerender.Shell{
			SiteName: "Wikipedia",
			Footer:   footer.New(&footer.Config{Site: site, SiteName: "Wikipedia"}, mobilei18n.ContentPrinter("en")),
			View:     &mobilectx.Config{MobileURLTemplate: "%h0.m.%h1.%h2"},
			Metrics:  rec,
		},
		Site:            site,
		Articles:        articles,
		Names:           fakeNames{"de": "Deutsch", "es": "español", "fr": "français"},
		ContentLanguage: "en",
		Metrics:         rec,
	}
}

func serve(t *testing.T, deps module.Dependencies, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func document(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	return doc
}

func TestModuleIDReturnsLanguages(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "languages" {
		t.Fatalf("ID() = %q, want %q", got, "languages")
	}
}

func TestMountUsesWikiPrefix(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/wiki/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/wiki/")
	}
}

func TestPageListsSortedMobileLinks(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{article: mwapi.Article{
		Title:    "Dog",
		Exists:   true,
		Language: "en",
		Links: []langlinks.RawLink{
			{Lang: "fr", URL: "https://fr.wikipedia.org/wiki/Chien", Label: "Chien"},
			{Lang: "xx", URL: "https://xx.wikipedia.org/wiki/Dog"},
			{Lang: "de", URL: "https://de.wikipedia.org/wiki/Haushund", Label: "Haushund"},
			{Lang: "es", URL: "https://es.wikipedia.org/wiki/Perro"},
		},
	}}
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	rr := serve(t, testDeps(articles, rec), http.MethodGet, "/wiki/Special:MobileLanguages/Dog")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if len(articles.titles) != 1 || articles.titles[0] != "Dog" {
		t.Fatalf("fetched titles = %v, want [Dog]", articles.titles)
	}

	doc := document(t, rr)
	if got := doc.Find("title").Text(); got != "Languages for Dog - Wikipedia" {
		t.Fatalf("title = %q, want %q", got, "Languages for Dog - Wikipedia")
	}
	if got := doc.Find("#content .content > p").First().Text(); got != "This page is available in 3 other languages." {
		t.Fatalf("summary = %q", got)
	}
	if got, _ := doc.Find("#content .content > p a").Attr("href"); got != "/wiki/Dog" {
		t.Fatalf("return link = %q, want %q", got, "/wiki/Dog")
	}

	links := doc.Find("#mw-mf-language-selection li a")
	wantNames := []string{"Deutsch", "español", "français"}
	if links.Length() != len(wantNames) {
		t.Fatalf("language links = %d, want %d", links.Length(), len(wantNames))
	}
	links.Each(func(i int, s *goquery.Selection) {
		if got := s.Text(); got != wantNames[i] {
			t.Fatalf("link %d name = %q, want %q", i, got, wantNames[i])
		}
	})
	first := links.First()
	if got, _ := first.Attr("href"); got != "https://de.m.wikipedia.org/wiki/Haushund" {
		t.Fatalf("href = %q, want mobile URL", got)
	}
	if got, _ := first.Attr("hreflang"); got != "de" {
		t.Fatalf("hreflang = %q, want %q", got, "de")
	}
	if got, _ := first.Attr("title"); got != "Haushund" {
		t.Fatalf("title attr = %q, want %q", got, "Haushund")
	}
	if doc.Find("#mw-mf-language-variant-selection").Length() != 0 {
		t.Fatal("expected no variant list for a language without variants")
	}

	expected := `
# HELP mobilefrontend_language_links_dropped_total Cross-language links dropped because their code has no display name.
# TYPE mobilefrontend_language_links_dropped_total counter
mobilefrontend_language_links_dropped_total 1
# HELP mobilefrontend_language_pages_total Language pages rendered, by outcome.
# TYPE mobilefrontend_language_pages_total counter
mobilefrontend_language_pages_total{outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"mobilefrontend_language_pages_total", "mobilefrontend_language_links_dropped_total"); err != nil {
		t.Fatalf("page metrics: %v", err)
	}
}

func TestPageListsVariants(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{article: mwapi.Article{Title: "Pas", Exists: true, Language: "sr"}}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/Pas")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	doc := document(t, rr)
	items := doc.Find("#mw-mf-language-variant-selection li a")
	if items.Length() != 2 {
		t.Fatalf("variants = %d, want 2", items.Length())
	}
	if got, _ := items.First().Attr("href"); got != "/w/index.php?title=Pas&variant=sr-ec" {
		t.Fatalf("variant href = %q", got)
	}
	if got, _ := items.First().Attr("hreflang"); got != "sr-Cyrl" {
		t.Fatalf("variant hreflang = %q, want %q", got, "sr-Cyrl")
	}
	if doc.Find("#mw-mf-language-selection").Length() != 0 {
		t.Fatal("expected no language list without links")
	}
}

func TestPageFollowsRedirectTitle(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{article: mwapi.Article{Title: "Dog", Exists: true}}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/Doggo")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := document(t, rr)
	if got, _ := doc.Find("#content .content > p a").Attr("href"); got != "/wiki/Dog" {
		t.Fatalf("return link = %q, want %q", got, "/wiki/Dog")
	}
}

func TestMissingPageRendersNonexistentMessage(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{article: mwapi.Article{Title: "Nope"}}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/Nope")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := document(t, rr)
	if got := doc.Find("#content .content p").Text(); got != "The page Nope does not exist." {
		t.Fatalf("message = %q", got)
	}
	if got := doc.Find("title").Text(); got != "Languages - Wikipedia" {
		t.Fatalf("title = %q, want %q", got, "Languages - Wikipedia")
	}
}

func TestInvalidTitleSkipsFetch(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/A%5Bb%5D")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if len(articles.titles) != 0 {
		t.Fatalf("fetched titles = %v, want none", articles.titles)
	}
	if got := document(t, rr).Find("#content .content p").Text(); got != "The page A[b] does not exist." {
		t.Fatalf("message = %q", got)
	}
}

func TestEmptyPageNameReturnsNotFound(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/wiki/Special:MobileLanguages", "/wiki/Special:MobileLanguages/"} {
		rr := serve(t, testDeps(&fakeArticles{}, nil), http.MethodGet, target)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want %d", target, rr.Code, http.StatusNotFound)
		}
		if got := document(t, rr).Find("h1#section_0").Text(); got != "Page not specified" {
			t.Fatalf("GET %s heading = %q, want %q", target, got, "Page not specified")
		}
	}
}

func TestFetchFailureReturnsUnavailable(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{err: errors.New("connection refused")}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/Dog")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatal("error page leaked the fetch error")
	}
}

func TestUnconfiguredArticlesReturnUnavailable(t *testing.T) {
	t.Parallel()

	rr := serve(t, module.Dependencies{}, http.MethodGet, "/wiki/Special:MobileLanguages/Dog")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestPageHonorsUseLang(t *testing.T) {
	t.Parallel()

	articles := &fakeArticles{article: mwapi.Article{Title: "Dog", Exists: true}}
	rr := serve(t, testDeps(articles, nil), http.MethodGet, "/wiki/Special:MobileLanguages/Dog?uselang=de")
	if got := document(t, rr).Find("title").Text(); got != "Sprachen für Dog – Wikipedia" {
		t.Fatalf("title = %q, want %q", got, "Sprachen für Dog – Wikipedia")
	}
}

func TestOtherWikiPathsReturnNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(&fakeArticles{}, nil), http.MethodGet, "/wiki/Dog")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPostReturnsMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rr := serve(t, testDeps(&fakeArticles{}, nil), http.MethodPost, "/wiki/Special:MobileLanguages/Dog")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
