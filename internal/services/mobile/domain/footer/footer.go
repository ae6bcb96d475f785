// Package footer assembles the desktop and mobile page footers: the
// mobile-view switch, site name, license line and policy links.
package footer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/htmlx"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/message"
)

const (
	keyViewMobile  = "footer.view_mobile"
	keyViewDesktop = "footer.view_desktop"
	keySitename    = "footer.sitename"
	keyTermsText   = "footer.terms_text"
	keyTermsURL    = "footer.terms_url"
	keyPrivacyText = "footer.privacy_text"
	keyPrivacyPage = "footer.privacy_page"
)

// Trademark values for Config.TrademarkSitename.
const (
	TrademarkNone       = ""
	TrademarkRegistered = "registered"
)

// Localizer provides translated strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ViewContext is the viewing context of the current request.
type ViewContext interface {
	ShouldDisplayMobileView() bool
	IsBlacklistedPage() bool
	MobileURL(string) string
	DesktopURL(string) string
}

// Logos holds the custom copyright logo settings.
type Logos struct {
	Copyright       string
	CopyrightWidth  string
	CopyrightHeight string
}

// Config holds the site settings the footer reads.
type Config struct {
	Site     wikititle.Site
	SiteName string
	// RightsPage is a local page describing the license.
	RightsPage string
	// RightsURL is an external license URL, used when RightsPage is empty.
	RightsURL  string
	RightsText string
	Logos      Logos
	// TrademarkSitename is TrademarkNone, TrademarkRegistered, or any other
	// non-empty value for an unregistered trademark.
	TrademarkSitename string
}

// Request is the part of the current request the footer links depend on.
type Request struct {
	Title wikititle.Title
	Query url.Values
	// DesktopURL overrides the desktop link target when the page knows it.
	DesktopURL string
}

// Decorator adjusts an assembled mobile footer.
type Decorator interface {
	DecorateFooter(state State) State
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc func(State) State

// DecorateFooter calls f.
func (f DecoratorFunc) DecorateFooter(state State) State { return f(state) }

// Option configures an Assembler.
type Option func(*Assembler)

// WithDecorator appends a footer decorator. Decorators run in order.
func WithDecorator(d Decorator) Option {
	return func(a *Assembler) {
		if d != nil {
			a.decorators = append(a.decorators, d)
		}
	}
}

// WithLicenseDecorator appends a license decorator. Decorators run in order.
func WithLicenseDecorator(d LicenseDecorator) Option {
	return func(a *Assembler) {
		if d != nil {
			a.licenseDecorators = append(a.licenseDecorators, d)
		}
	}
}

// Assembler builds footers for one site.
type Assembler struct {
	cfg               *Config
	content           Localizer
	decorators        []Decorator
	licenseDecorators []LicenseDecorator
	policy            *bluemonday.Policy
}

// New returns an Assembler. content localizes the messages that belong to
// the wiki's content language rather than the reader's: the conjunction,
// the terms URL and the privacy page name.
func New(cfg *Config, content Localizer, opts ...Option) *Assembler {
	if cfg == nil {
		cfg = &Config{}
	}
	a := &Assembler{cfg: cfg, content: content, policy: licensePolicy()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func licensePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("href", "title", "class", "rel").OnElements("a")
	p.AllowAttrs("class").OnElements("span")
	p.AllowElements("b", "i", "em", "strong", "span", "sup", "sub", "bdi")
	return p
}

// Prepare returns state extended with the footer for the current view. On
// a blacklisted page state is returned unchanged. A desktop view appends
// the mobile switch to the places group; a mobile view replaces the link
// groups with terms, privacy and the desktop switch.
func (a *Assembler) Prepare(loc Localizer, view ViewContext, req Request, state State) State {
	if view == nil || view.IsBlacklistedPage() {
		return state
	}
	if view.ShouldDisplayMobileView() {
		return a.mobileFooter(loc, view, req, state)
	}
	return a.desktopFooter(loc, view, req, state)
}

func (a *Assembler) desktopFooter(loc Localizer, view ViewContext, req Request, state State) State {
	out := state.Clone()
	args := cloneValues(req.Query)
	args.Del("title")
	args.Del("useformat")
	args.Set("mobileaction", "toggle_view_mobile")

	mobileViewURL := view.MobileURL(a.cfg.Site.FullURL(req.Title, args))
	out.Set(SlotMobileView, htmlx.Element("a", tr(loc, keyViewMobile),
		htmlx.A("href", mobileViewURL),
		htmlx.A("class", "noprint stopMobileRedirectToggle"),
	))
	out.Append(GroupPlaces, SlotMobileView)
	return out
}

func (a *Assembler) mobileFooter(loc Localizer, view ViewContext, req Request, state State) State {
	out := state.Clone()

	var target string
	if req.DesktopURL != "" {
		target = appendQuery(req.DesktopURL, "mobileaction=toggle_view_desktop")
	} else {
		args := cloneValues(req.Query)
		args.Del("title")
		args.Set("mobileaction", "toggle_view_desktop")
		target = a.cfg.Site.LocalURL(req.Title, args)
	}
	desktopURL := view.DesktopURL(a.cfg.Site.ProtocolRelative(target))
	desktopToggler := htmlx.Element("a", tr(loc, keyViewDesktop),
		htmlx.A("id", "mw-mf-display-toggle"),
		htmlx.A("href", desktopURL),
	)

	out.Set(SlotSiteHeading, a.Sitename(loc, true))
	out.Set(SlotDesktopToggle, desktopToggler)
	out.Set(SlotLicense, a.LicenseText(loc, a.License("footer")))
	out.Set(SlotPrivacy, a.PrivacyLink(loc))
	out.Set(SlotTermsOfUse, a.TermsLink(loc))
	out.Links = []LinkGroup{{Name: GroupPlaces, Slots: []string{SlotTermsOfUse, SlotPrivacy, SlotDesktopToggle}}}

	for _, d := range a.decorators {
		out = d.DecorateFooter(out)
	}
	return out
}

// Sitename renders the site name as text, or as an img when a copyright
// logo is configured. withTrademark appends the configured trademark sign.
func (a *Assembler) Sitename(loc Localizer, withTrademark bool) string {
	name := tr(loc, keySitename, a.cfg.SiteName)

	suffix := ""
	if withTrademark {
		switch a.cfg.TrademarkSitename {
		case TrademarkNone:
		case TrademarkRegistered:
			suffix = htmlx.Element("sup", "®")
		default:
			suffix = htmlx.Element("sup", "™")
		}
	}

	logos := a.cfg.Logos
	if logos.Copyright == "" {
		return htmlx.Escape(name) + suffix
	}
	attrs := []htmlx.Attr{htmlx.A("src", logos.Copyright), htmlx.A("alt", name)}
	if logos.CopyrightHeight != "" {
		attrs = append(attrs, htmlx.A("height", logos.CopyrightHeight))
	}
	if logos.CopyrightWidth != "" {
		attrs = append(attrs, htmlx.A("width", logos.CopyrightWidth))
	}
	return htmlx.Void("img", attrs...) + suffix
}

// TermsLink renders the terms of use link, or "" when the terms URL
// message is disabled.
func (a *Assembler) TermsLink(loc Localizer) string {
	target := tr(a.content, keyTermsURL)
	if isDisabled(target) {
		return ""
	}
	href := a.cfg.Site.InternalOrExternalURL(target)
	if href == "" {
		return ""
	}
	return htmlx.Element("a", tr(loc, keyTermsText), htmlx.A("href", href))
}

// PrivacyLink renders the privacy policy link, or "" when the page message
// is disabled or names an invalid title.
func (a *Assembler) PrivacyLink(loc Localizer) string {
	text := tr(loc, keyPrivacyText)
	page := tr(a.content, keyPrivacyPage)
	if isDisabled(text) || isDisabled(page) {
		return ""
	}
	title, err := wikititle.Parse(page)
	if err != nil {
		return ""
	}
	return htmlx.Element("a", text,
		htmlx.A("href", a.cfg.Site.LocalURL(title, nil)),
		htmlx.A("title", title.PrefixedText()),
	)
}

func isDisabled(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || text == "-"
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func appendQuery(target, query string) string {
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}

func tr(loc Localizer, key string, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if len(args) > 0 {
		return fmt.Sprint(args...)
	}
	return ""
}

// Link is an extra footer link to a local page.
type Link struct {
	Slot string
	Page string
}

// BaseState returns a state holding links in the places group, in order.
// Links with an empty slot or an invalid page are skipped.
func (a *Assembler) BaseState(links []Link) State {
	state := State{Slots: map[string]string{}}
	for _, link := range links {
		slot := strings.TrimSpace(link.Slot)
		if slot == "" {
			continue
		}
		title, err := wikititle.Parse(link.Page)
		if err != nil {
			continue
		}
		state.Set(slot, htmlx.Element("a", title.Text(),
			htmlx.A("href", a.cfg.Site.LocalURL(title, nil)),
			htmlx.A("title", title.PrefixedText()),
		))
		state.Append(GroupPlaces, slot)
	}
	return state
}
