// Package langpage renders the Special:MobileLanguages page body.
package langpage

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/variants"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/htmlx"
	"golang.org/x/text/message"
)

const (
	keyHeader           = "languages.header"
	keyHeaderPage       = "languages.header_page"
	keyVariantHeader    = "languages.variant_header"
	keyText             = "languages.text"
	keyReturnTo         = "languages.returnto"
	keyNonexistentTitle = "languages.nonexistent_title"
	keyNotFoundTitle    = "languages.404_title"
	keyNotFoundDesc     = "languages.404_desc"
)

// Element ids the mobile skin styles and scripts rely on.
const (
	VariantHeaderID     = "mw-mf-language-variant-header"
	VariantSelectionID  = "mw-mf-language-variant-selection"
	LanguageHeaderID    = "mw-mf-language-header"
	LanguageSelectionID = "mw-mf-language-selection"
)

// Localizer provides translated strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Article is the page whose languages are listed.
type Article struct {
	// Title is the prefixed display title.
	Title  string
	Exists bool
	// URL is the article's own URL.
	URL string
}

// Input is everything one render needs.
type Input struct {
	// PageName is the raw page name from the request path.
	PageName  string
	Article   Article
	Languages []langlinks.LanguageLink
	Variants  []variants.VariantLink
}

// Page is a rendered page body and its title.
type Page struct {
	Title   string
	Content templ.Component
	// HTML is the markup Content writes.
	HTML string
}

// NotFoundError reports a request without a page name.
type NotFoundError struct {
	Title       string
	Description string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("languages page not found: %s", e.Description)
}

// Render builds the languages page. The only error is *NotFoundError, for
// an empty page name. Equal inputs render byte-identical markup.
func Render(loc Localizer, in Input) (Page, error) {
	if strings.TrimSpace(in.PageName) == "" {
		return Page{}, &NotFoundError{
			Title:       tr(loc, keyNotFoundTitle),
			Description: tr(loc, keyNotFoundDesc),
		}
	}

	var b strings.Builder
	var title string
	if !in.Article.Exists {
		title = tr(loc, keyHeader)
		b.WriteString(htmlx.Element("p", tr(loc, keyNonexistentTitle, in.PageName)))
	} else {
		title = tr(loc, keyHeaderPage, in.Article.Title)
		b.WriteString(htmlx.Element("p", tr(loc, keyText, in.Article.Title, len(in.Languages))))
		b.WriteString(htmlx.RawElement("p",
			htmlx.Element("a", tr(loc, keyReturnTo, in.Article.Title), htmlx.A("href", in.Article.URL)),
		))

		if len(in.Variants) > 1 {
			b.WriteString(htmlx.Element("h2", tr(loc, keyVariantHeader), htmlx.A("id", VariantHeaderID)))
			b.WriteString(htmlx.Open("ul", htmlx.A("id", VariantSelectionID)))
			for _, v := range in.Variants {
				b.WriteString(listItem(v.URL, v.Code, v.Name, ""))
			}
			b.WriteString(htmlx.Close("ul"))
		}
		if len(in.Languages) > 0 {
			b.WriteString(htmlx.Element("h2", tr(loc, keyHeader), htmlx.A("id", LanguageHeaderID)))
			b.WriteString(htmlx.Open("ul", htmlx.A("id", LanguageSelectionID)))
			for _, l := range in.Languages {
				b.WriteString(listItem(l.URL, l.Code, l.Name, l.Label))
			}
			b.WriteString(htmlx.Close("ul"))
		}
	}

	html := htmlx.RawElement("div", b.String(), htmlx.A("class", "content"))
	return Page{Title: title, Content: htmlx.Component(html), HTML: html}, nil
}

func listItem(href, lang, name, label string) string {
	if label == "" {
		label = name
	}
	return htmlx.RawElement("li", htmlx.Element("a", name,
		htmlx.A("href", href),
		htmlx.A("hreflang", lang),
		htmlx.A("lang", lang),
		htmlx.A("title", label),
	))
}

func tr(loc Localizer, key string, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if len(args) > 0 {
		return key + fmt.Sprint(args...)
	}
	return key
}
