// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/louisbranch/mobilefrontend/internal/platform/telemetry/metrics"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/footer"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/httpx"
	mobilei18n "github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/i18n"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/mobilectx"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/templates"
)

// Footer views recorded in metrics.
const (
	ViewMobile      = "mobile"
	ViewDesktop     = "desktop"
	ViewBlacklisted = "blacklisted"
)

// Shell holds the site-wide parts every page is rendered with.
type Shell struct {
	SiteName string
	Footer   *footer.Assembler
	// Links are the extra footer links shown on desktop pages.
	Links   []footer.Link
	View    *mobilectx.Config
	Metrics *metrics.Recorder
}

// ModulePage describes a module page response.
type ModulePage struct {
	Title      string
	StatusCode int
	// WikiTitle is the wiki page being served; the footer links point at it.
	WikiTitle wikititle.Title
	// DesktopURL overrides the target of the desktop switch.
	DesktopURL string
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage renders page inside the shared layout. Nothing is written
// when rendering fails.
func WriteModulePage(w http.ResponseWriter, r *http.Request, shell *Shell, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	loc, lang := mobilei18n.ResolveLocalizer(w, r)
	layout := shell.Layout(r, loc, page)
	layout.Lang = lang

	var buf bytes.Buffer
	ctx := httpx.RequestContext(r)
	if err := templates.AppLayout(layout, loc).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// Layout resolves the view of r and assembles the footer for page.
func (s *Shell) Layout(r *http.Request, loc templates.Localizer, page ModulePage) templates.Layout {
	if s == nil {
		s = &Shell{}
	}
	view := mobilectx.New(s.View, r, page.WikiTitle)
	layout := templates.Layout{
		Title:    page.Title,
		SiteName: s.SiteName,
		Mobile:   view.ShouldDisplayMobileView(),
	}
	if s.Footer == nil {
		return layout
	}

	query := url.Values{}
	if r != nil && r.URL != nil {
		query = r.URL.Query()
	}
	req := footer.Request{Title: page.WikiTitle, Query: query, DesktopURL: page.DesktopURL}
	layout.Footer = s.Footer.Prepare(loc, view, req, s.Footer.BaseState(s.Links))

	switch {
	case view.IsBlacklistedPage():
		s.Metrics.FooterPrepared(ViewBlacklisted)
	case layout.Mobile:
		s.Metrics.FooterPrepared(ViewMobile)
	default:
		s.Metrics.FooterPrepared(ViewDesktop)
	}
	return layout
}
