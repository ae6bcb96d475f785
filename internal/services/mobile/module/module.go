// Package module defines the feature contract used by mobile composition.
package module

import (
	"context"
	"net/http"

	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/searchparams"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/variants"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/integration/mwapi"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
)

// ArticleClient fetches the interlanguage links of a page.
type ArticleClient interface {
	Article(ctx context.Context, title string) (mwapi.Article, error)
}

// Dependencies carries the shared collaborators modules are mounted with.
type Dependencies struct {
	Shell    *pagerender.Shell
	Site     wikititle.Site
	Articles ArticleClient
	Names    langlinks.NameTable
	Variants *variants.Table
	// ContentLanguage is used for pages the API reports no language for.
	ContentLanguage string
	Search          *searchparams.Config
	Metrics         *metrics.Recorder
	// MetricsHandler serves the metrics endpoint; nil disables it.
	MetricsHandler http.Handler
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by mobile composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
