package languages

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/platform/langnames"
	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langpage"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/variants"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/integration/mwapi"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	apperrors "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/errors"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/mobilectx"
)

// Page outcomes recorded in metrics.
const (
	outcomeOK          = "ok"
	outcomeMissing     = "missing"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "unavailable"
)

type service struct {
	articles        module.ArticleClient
	names           langlinks.NameTable
	variants        *variants.Table
	site            wikititle.Site
	view            *mobilectx.Config
	contentLanguage string
	metrics         *metrics.Recorder
}

type unavailableArticles struct{}

func (unavailableArticles) Article(context.Context, string) (mwapi.Article, error) {
	return mwapi.Article{}, apperrors.E(apperrors.KindUnavailable, "article source is not configured")
}

func newService(deps module.Dependencies) service {
	articles := deps.Articles
	if articles == nil {
		articles = unavailableArticles{}
	}
	names := deps.Names
	if names == nil {
		names = langnames.NewResolver(nil)
	}
	table := deps.Variants
	if table == nil {
		table = variants.Builtin()
	}
	var view *mobilectx.Config
	if deps.Shell != nil {
		view = deps.Shell.View
	}
	return service{
		articles:        articles,
		names:           names,
		variants:        table,
		site:            deps.Site,
		view:            view,
		contentLanguage: strings.TrimSpace(deps.ContentLanguage),
		metrics:         deps.Metrics,
	}
}

// loadPage fetches pageName and renders its languages page, reporting the
// outcome for metrics. An empty name yields *langpage.NotFoundError; a failed
// fetch an unavailable error.
func (s service) loadPage(ctx context.Context, loc langpage.Localizer, pageName string) (langpage.Page, string, error) {
	pageName = strings.TrimSpace(pageName)
	if pageName == "" {
		page, err := langpage.Render(loc, langpage.Input{})
		return page, outcomeNotFound, err
	}
	title, err := wikititle.Parse(pageName)
	if err != nil {
		return s.missing(loc, pageName)
	}

	article, err := s.articles.Article(ctx, title.PrefixedText())
	if err != nil {
		return langpage.Page{}, outcomeUnavailable, apperrors.Wrap(apperrors.KindUnavailable, "errors.unavailable_desc", fmt.Errorf("fetch %q: %w", title.PrefixedText(), err))
	}
	if !article.Exists {
		return s.missing(loc, title.PrefixedText())
	}
	// Redirects resolve to the target page.
	if resolved, err := wikititle.Parse(article.Title); err == nil {
		title = resolved
	}

	links := langlinks.Normalize(article.Links, s.names, s.view.MobileURL)
	s.metrics.LinksDropped(langlinks.Dropped(article.Links, links))

	base := strings.ToLower(strings.TrimSpace(article.Language))
	if base == "" {
		base = strings.ToLower(s.contentLanguage)
	}
	variantLinks := variants.List(base, s.variants.Variants(base), func(code string) string {
		return s.site.LocalURL(title, url.Values{"variant": {code}})
	}, langnames.BCP47, s.variants)

	page, err := langpage.Render(loc, langpage.Input{
		PageName: pageName,
		Article: langpage.Article{
			Title:  title.PrefixedText(),
			Exists: true,
			URL:    s.site.LocalURL(title, nil),
		},
		Languages: links,
		Variants:  variantLinks,
	})
	return page, outcomeOK, err
}

func (s service) missing(loc langpage.Localizer, name string) (langpage.Page, string, error) {
	page, err := langpage.Render(loc, langpage.Input{
		PageName: name,
		Article:  langpage.Article{Title: name},
	})
	return page, outcomeMissing, err
}
