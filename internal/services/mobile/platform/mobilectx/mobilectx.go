// Package mobilectx decides whether a request sees the mobile view and maps
// URLs between the desktop and mobile hosts.
package mobilectx

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
)

const (
	// FormatParam forces a view for one request: "mobile" or "desktop".
	FormatParam = "useformat"
	// ActionParam switches the remembered view.
	ActionParam = "mobileaction"
	// FormatCookieName remembers an explicit choice of the mobile view.
	FormatCookieName = "mf_useformat"

	actionViewMobile  = "toggle_view_mobile"
	actionViewDesktop = "toggle_view_desktop"
)

// Config holds the mobile site settings.
type Config struct {
	// MobileURLTemplate rewrites a desktop host into the mobile one. %hN
	// stands for the Nth label of the desktop host, e.g. "%h0.m.%h1.%h2".
	// An empty template serves both views from the same host.
	MobileURLTemplate string
	// NoMobilePages lists titles that never get the mobile footer. An entry
	// ending in "*" matches every title with that prefix.
	NoMobilePages []string
}

// Context is the view state of one request.
type Context struct {
	cfg    *Config
	title  wikititle.Title
	mobile bool
}

// New returns the view context of r for title.
func New(cfg *Config, r *http.Request, title wikititle.Title) *Context {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Context{cfg: cfg, title: title, mobile: cfg.detect(r)}
}

func (c *Config) detect(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.URL != nil {
		switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(FormatParam))) {
		case "mobile", "mobile-wap":
			return true
		case "desktop":
			return false
		}
	}
	if c.IsMobileHost(r.Host) {
		return true
	}
	if cookie, err := r.Cookie(FormatCookieName); err == nil {
		return cookie.Value == "true"
	}
	return false
}

// ShouldDisplayMobileView reports whether the request gets the mobile view.
func (c *Context) ShouldDisplayMobileView() bool {
	return c != nil && c.mobile
}

// IsBlacklistedPage reports whether the title is excluded from the mobile
// footer.
func (c *Context) IsBlacklistedPage() bool {
	if c == nil || c.title.IsZero() {
		return false
	}
	name := c.title.PrefixedText()
	for _, entry := range c.cfg.NoMobilePages {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(entry, "*"); ok {
			if norm := normalizeEntry(prefix); norm != "" && strings.HasPrefix(name, norm) {
				return true
			}
			continue
		}
		if normalizeEntry(entry) == name {
			return true
		}
	}
	return false
}

func normalizeEntry(entry string) string {
	title, err := wikititle.Parse(entry)
	if err != nil {
		return ""
	}
	return title.PrefixedText()
}

// MobileURL rewrites the host of target into the mobile host.
func (c *Context) MobileURL(target string) string {
	if c == nil {
		return target
	}
	return c.cfg.MobileURL(target)
}

// DesktopURL rewrites the host of target into the desktop host.
func (c *Context) DesktopURL(target string) string {
	if c == nil {
		return target
	}
	return c.cfg.DesktopURL(target)
}

// MobileURL rewrites the host of target with the mobile template. Relative
// URLs, hosts with too few labels and hosts that already are mobile are
// returned unchanged.
func (c *Config) MobileURL(target string) string {
	return c.rewriteHost(target, c.mobileHost)
}

// DesktopURL removes the mobile labels of the template from the host of
// target.
func (c *Config) DesktopURL(target string) string {
	return c.rewriteHost(target, c.desktopHost)
}

// IsMobileHost reports whether host carries the template's mobile labels.
func (c *Config) IsMobileHost(host string) bool {
	if c == nil || c.MobileURLTemplate == "" {
		return false
	}
	host = hostname(host)
	return host != "" && c.desktopHost(host) != host
}

func (c *Config) rewriteHost(target string, rewrite func(string) string) string {
	if c == nil || c.MobileURLTemplate == "" {
		return target
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	host := u.Hostname()
	next := rewrite(host)
	if next == host {
		return target
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(next, port)
	} else {
		u.Host = next
	}
	return u.String()
}

func (c *Config) mobileHost(host string) string {
	hostLabels := strings.Split(host, ".")
	templateLabels := strings.Split(c.MobileURLTemplate, ".")
	out := make([]string, 0, len(templateLabels))
	for i, label := range templateLabels {
		if index, ok := placeholder(label); ok {
			if index >= len(hostLabels) {
				return host
			}
			out = append(out, hostLabels[index])
			continue
		}
		if i < len(hostLabels) && hostLabels[i] == label {
			return host
		}
		out = append(out, label)
	}
	return strings.Join(out, ".")
}

func (c *Config) desktopHost(host string) string {
	hostLabels := strings.Split(host, ".")
	templateLabels := strings.Split(c.MobileURLTemplate, ".")
	for i := len(templateLabels) - 1; i >= 0; i-- {
		if _, ok := placeholder(templateLabels[i]); ok {
			continue
		}
		if i < len(hostLabels) && hostLabels[i] == templateLabels[i] {
			hostLabels = append(hostLabels[:i], hostLabels[i+1:]...)
		}
	}
	return strings.Join(hostLabels, ".")
}

func placeholder(label string) (int, bool) {
	digits, ok := strings.CutPrefix(label, "%h")
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
