// Package mobile hosts the mobile presentation HTTP service.
package mobile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/platform/timeouts"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/app"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/footer"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/searchparams"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/variants"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	module "github.com/louisbranch/mobilefrontend/internal/services/mobile/module"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/modules"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/httpx"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/mobilectx"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/observability"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/pagerender"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const operationName = "mobilefrontend"

// Config defines startup inputs for the mobile service.
type Config struct {
	HTTPAddr string
	Site     wikititle.Site
	SiteName string
	// ContentLanguage is the wiki content language; footer links and
	// pages without a reported language use it.
	ContentLanguage string
	View            *mobilectx.Config
	Footer          *footer.Config
	FooterOptions   []footer.Option
	FooterLinks     []footer.Link
	Search          *searchparams.Config
	Names           langlinks.NameTable
	Variants        *variants.Table
	Articles        module.ArticleClient
	Metrics         *metrics.Recorder
	// Gatherer backs the metrics endpoint; nil disables it.
	Gatherer prometheus.Gatherer
}

// Server hosts the mobile HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	footerCfg := cfg.Footer
	if footerCfg == nil {
		footerCfg = &footer.Config{Site: cfg.Site, SiteName: cfg.SiteName}
	}
	shell := &pagerender.Shell{
		SiteName: cfg.SiteName,
		Footer:   footer.New(footerCfg, mobilei18n.ContentPrinter(cfg.ContentLanguage), cfg.FooterOptions...),
		Links:    cfg.FooterLinks,
		View:     cfg.View,
		Metrics:  cfg.Metrics,
	}
	deps := module.Dependencies{
		Shell:           shell,
		Site:            cfg.Site,
		Articles:        cfg.Articles,
		Names:           cfg.Names,
		Variants:        cfg.Variants,
		ContentLanguage: cfg.ContentLanguage,
		Search:          cfg.Search,
		Metrics:         cfg.Metrics,
	}
	if cfg.Gatherer != nil {
		deps.MetricsHandler = metrics.Handler(cfg.Gatherer)
	}

	h, err := app.BuildRootHandler(app.Config{
		Dependencies: deps,
		Modules:      modules.DefaultPublicModules(),
	})
	if err != nil {
		return nil, err
	}
	handler := httpx.Chain(h,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		mobilectx.ToggleView(cfg.View),
		observability.RequestLogger(log.Default()),
	)
	return otelhttp.NewHandler(handler, operationName), nil
}

// NewServer validates config and constructs a mobile server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose mobile handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("mobile server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("mobile server listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown mobile http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve mobile http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
