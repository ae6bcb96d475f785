// Package templates renders the page shell shared by every mobile page.
package templates

import (
	"context"
	_ "embed"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/footer"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/htmlx"
)

const layoutTitleKey = "layout.title"

// toggleScript lets readers open sections before the skin scripts load.
//
//go:embed assets/toggle.js
var toggleScript string

// lazyImageScript swaps lazy image placeholders for images on browsers
// that never load the full skin.
//
//go:embed assets/lazyimages.js
var lazyImageScript string

// Layout describes one rendered page.
type Layout struct {
	Title    string
	SiteName string
	Lang     string
	// Mobile selects the mobile skin and its inline scripts.
	Mobile bool
	Footer footer.State
}

// PageTitle is the document title: the page title followed by the site name.
func PageTitle(loc Localizer, title, siteName string) string {
	title = strings.TrimSpace(title)
	if siteName == "" {
		return title
	}
	if title == "" {
		return siteName
	}
	return T(loc, layoutTitleKey, title, siteName)
}

// AppLayout renders the document around the children of the context.
func AppLayout(layout Layout, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := layout.Lang
		if lang == "" {
			lang = "en"
		}
		bodyClass := "mw-desktop"
		if layout.Mobile {
			bodyClass = "mw-mf"
		}

		var head strings.Builder
		head.WriteString("<!DOCTYPE html>")
		head.WriteString(htmlx.Open("html", htmlx.A("lang", lang)))
		head.WriteString("<head>")
		head.WriteString(htmlx.Void("meta", htmlx.A("charset", "utf-8")))
		head.WriteString(htmlx.Void("meta", htmlx.A("name", "viewport"), htmlx.A("content", "initial-scale=1.0, user-scalable=yes, minimum-scale=0.25, maximum-scale=5.0, width=device-width")))
		head.WriteString(htmlx.Element("title", PageTitle(loc, layout.Title, layout.SiteName)))
		if layout.Mobile {
			head.WriteString(inlineScript(toggleScript))
		}
		head.WriteString("</head>")
		head.WriteString(htmlx.Open("body", htmlx.A("class", bodyClass)))
		head.WriteString(htmlx.Open("div", htmlx.A("id", "content"), htmlx.A("class", "mw-body")))
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		if children := templ.GetChildren(ctx); children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}

		var tail strings.Builder
		tail.WriteString(htmlx.Close("div"))
		tail.WriteString(Footer(layout.Footer))
		if layout.Mobile {
			tail.WriteString(inlineScript(lazyImageScript))
		}
		tail.WriteString("</body></html>")
		_, err := io.WriteString(w, tail.String())
		return err
	})
}

// Footer renders an assembled footer: the site heading and license line
// when present, then every link group in order.
func Footer(state footer.State) string {
	var b strings.Builder
	b.WriteString(htmlx.Open("div", htmlx.A("id", "footer"), htmlx.A("role", "contentinfo")))
	if heading := state.Slots[footer.SlotSiteHeading]; heading != "" {
		b.WriteString(htmlx.RawElement("h2", heading, htmlx.A("class", "footer-site-heading")))
	}
	if license := state.Slots[footer.SlotLicense]; license != "" {
		b.WriteString(htmlx.RawElement("div", license, htmlx.A("class", "license")))
	}
	for _, group := range state.Links {
		var items strings.Builder
		for _, slot := range group.Slots {
			markup := state.Slots[slot]
			if markup == "" {
				continue
			}
			items.WriteString(htmlx.RawElement("li", markup, htmlx.A("id", "footer-"+group.Name+"-"+slot)))
		}
		if items.Len() == 0 {
			continue
		}
		b.WriteString(htmlx.RawElement("ul", items.String(), htmlx.A("id", "footer-"+group.Name)))
	}
	b.WriteString(htmlx.Close("div"))
	return b.String()
}

func inlineScript(js string) string {
	return "<script>" + strings.TrimSpace(js) + "</script>"
}
