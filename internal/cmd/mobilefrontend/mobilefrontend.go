// Package mobilefrontend parses mobile frontend command flags and launches
// the HTTP service.
package mobilefrontend

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/mobilefrontend/internal/platform/cmd"
	"github.com/louisbranch/mobilefrontend/internal/platform/langnames"
	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/footer"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/searchparams"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/variants"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/integration/mwapi"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/mobilectx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Config holds mobile frontend command configuration.
type Config struct {
	HTTPAddr     string        `env:"MOBILEFRONTEND_HTTP_ADDR" envDefault:"localhost:8095"`
	APIEndpoint  string        `env:"MOBILEFRONTEND_API_ENDPOINT" envDefault:"https://en.wikipedia.org/w/api.php"`
	APITimeout   time.Duration `env:"MOBILEFRONTEND_API_TIMEOUT" envDefault:"5s"`
	APIRateLimit float64       `env:"MOBILEFRONTEND_API_RATE_LIMIT" envDefault:"0"`
	APIBurst     int           `env:"MOBILEFRONTEND_API_BURST" envDefault:"4"`
	UserAgent    string        `env:"MOBILEFRONTEND_USER_AGENT"`

	Server           string `env:"MOBILEFRONTEND_SERVER" envDefault:"https://en.wikipedia.org"`
	ArticlePath      string `env:"MOBILEFRONTEND_ARTICLE_PATH" envDefault:"/wiki/$1"`
	ScriptPath       string `env:"MOBILEFRONTEND_SCRIPT_PATH" envDefault:"/w/index.php"`
	ProjectNamespace string `env:"MOBILEFRONTEND_PROJECT_NAMESPACE" envDefault:"Wikipedia"`
	SiteName         string `env:"MOBILEFRONTEND_SITENAME" envDefault:"Wikipedia"`
	ContentLanguage  string `env:"MOBILEFRONTEND_CONTENT_LANGUAGE" envDefault:"en"`

	MobileURLTemplate string   `env:"MOBILEFRONTEND_MOBILE_URL_TEMPLATE" envDefault:"%h0.m.%h1.%h2"`
	NoMobilePages     []string `env:"MOBILEFRONTEND_NO_MOBILE_PAGES" envSeparator:"|"`

	RightsPage          string `env:"MOBILEFRONTEND_RIGHTS_PAGE"`
	RightsURL           string `env:"MOBILEFRONTEND_RIGHTS_URL"`
	RightsText          string `env:"MOBILEFRONTEND_RIGHTS_TEXT"`
	CopyrightLogo       string `env:"MOBILEFRONTEND_COPYRIGHT_LOGO"`
	CopyrightLogoWidth  string `env:"MOBILEFRONTEND_COPYRIGHT_LOGO_WIDTH"`
	CopyrightLogoHeight string `env:"MOBILEFRONTEND_COPYRIGHT_LOGO_HEIGHT"`
	TrademarkSitename   string `env:"MOBILEFRONTEND_TRADEMARK_SITENAME"`
	// FooterLinks lists slot=Page pairs shown on desktop footers.
	FooterLinks []string `env:"MOBILEFRONTEND_FOOTER_LINKS" envSeparator:"|" envDefault:"about=Project:About|disclaimer=Project:General disclaimer"`

	DisplayWikibaseDescriptions map[string]bool   `env:"MOBILEFRONTEND_DISPLAY_WIKIBASE_DESCRIPTIONS" envDefault:"search:true,nearby:true,watchlist:true,tagline:false"`
	SearchAPIParams             map[string]string `env:"MOBILEFRONTEND_SEARCH_API_PARAMS"`
	QueryPropModules            []string          `env:"MOBILEFRONTEND_QUERY_PROP_MODULES" envDefault:"pageimages"`

	LanguageNames map[string]string `env:"MOBILEFRONTEND_LANGUAGE_NAMES"`
	// VariantsFile replaces the built-in variant table when set.
	VariantsFile string `env:"MOBILEFRONTEND_VARIANTS_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIEndpoint, "api-endpoint", cfg.APIEndpoint, "Wiki action API endpoint")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Action API request timeout")
	fs.Float64Var(&cfg.APIRateLimit, "api-rate-limit", cfg.APIRateLimit, "Action API requests per second, 0 for unlimited")
	fs.StringVar(&cfg.Server, "server", cfg.Server, "Wiki server URL")
	fs.StringVar(&cfg.SiteName, "sitename", cfg.SiteName, "Wiki site name")
	fs.StringVar(&cfg.ContentLanguage, "content-language", cfg.ContentLanguage, "Wiki content language code")
	fs.StringVar(&cfg.MobileURLTemplate, "mobile-url-template", cfg.MobileURLTemplate, "Mobile host template, e.g. %h0.m.%h1.%h2")
	fs.StringVar(&cfg.VariantsFile, "variants-file", cfg.VariantsFile, "YAML variant table replacing the built-in one")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the mobile frontend server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMobileFrontend, func(ctx context.Context) error {
		serverCfg, err := ServerConfig(cfg)
		if err != nil {
			return err
		}
		server, err := mobile.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init mobile server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve mobile: %w", err)
		}
		return nil
	})
}

// ServerConfig converts cfg into the service configuration, registering
// metrics on a fresh registry.
func ServerConfig(cfg Config) (mobile.Config, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	client, err := mwapi.New(mwapi.Config{
		Endpoint:          cfg.APIEndpoint,
		Timeout:           cfg.APITimeout,
		RequestsPerSecond: cfg.APIRateLimit,
		Burst:             cfg.APIBurst,
		UserAgent:         cfg.UserAgent,
	}, mwapi.WithObserver(rec.ObserveAPI))
	if err != nil {
		return mobile.Config{}, fmt.Errorf("init action api client: %w", err)
	}

	table := variants.Builtin()
	if path := strings.TrimSpace(cfg.VariantsFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return mobile.Config{}, fmt.Errorf("read variants file: %w", err)
		}
		if table, err = variants.Load(data); err != nil {
			return mobile.Config{}, err
		}
	}

	links, err := parseFooterLinks(cfg.FooterLinks)
	if err != nil {
		return mobile.Config{}, err
	}

	site := wikititle.Site{
		Server:           cfg.Server,
		ArticlePath:      cfg.ArticlePath,
		ScriptPath:       cfg.ScriptPath,
		ProjectNamespace: cfg.ProjectNamespace,
	}
	return mobile.Config{
		HTTPAddr:        cfg.HTTPAddr,
		Site:            site,
		SiteName:        cfg.SiteName,
		ContentLanguage: cfg.ContentLanguage,
		View: &mobilectx.Config{
			MobileURLTemplate: cfg.MobileURLTemplate,
			NoMobilePages:     cfg.NoMobilePages,
		},
		Footer: &footer.Config{
			Site:       site,
			SiteName:   cfg.SiteName,
			RightsPage: cfg.RightsPage,
			RightsURL:  cfg.RightsURL,
			RightsText: cfg.RightsText,
			Logos: footer.Logos{
				Copyright:       cfg.CopyrightLogo,
				CopyrightWidth:  cfg.CopyrightLogoWidth,
				CopyrightHeight: cfg.CopyrightLogoHeight,
			},
			TrademarkSitename: cfg.TrademarkSitename,
		},
		FooterLinks: links,
		Search: &searchparams.Config{
			DisplayWikibaseDescriptions: cfg.DisplayWikibaseDescriptions,
			SearchAPIParams:             searchAPIParams(cfg.SearchAPIParams),
			QueryPropModules:            cfg.QueryPropModules,
		},
		Names:    langnames.NewResolver(cfg.LanguageNames),
		Variants: table,
		Articles: client,
		Metrics:  rec,
		Gatherer: reg,
	}, nil
}

func parseFooterLinks(pairs []string) ([]footer.Link, error) {
	links := make([]footer.Link, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		slot, page, ok := strings.Cut(pair, "=")
		slot, page = strings.TrimSpace(slot), strings.TrimSpace(page)
		if !ok || slot == "" || page == "" {
			return nil, fmt.Errorf("footer link %q must be slot=Page", pair)
		}
		links = append(links, footer.Link{Slot: slot, Page: page})
	}
	return links, nil
}

func searchAPIParams(values map[string]string) searchparams.Params {
	if len(values) == 0 {
		return nil
	}
	params := make(searchparams.Params, len(values))
	for key, value := range values {
		params[key] = value
	}
	return params
}
