package mwapi

import (
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
)

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// queryResponse is the formatversion=2 shape of action=query.
type queryResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

type page struct {
	Title        string     `json:"title"`
	Missing      bool       `json:"missing"`
	Invalid      bool       `json:"invalid"`
	PageLanguage string     `json:"pagelanguage"`
	LangLinks    []langLink `json:"langlinks"`
}

type langLink struct {
	Lang  string `json:"lang"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (r queryResponse) article(requested string) Article {
	if len(r.Query.Pages) == 0 {
		return Article{Title: requested}
	}
	p := r.Query.Pages[0]
	title := p.Title
	if title == "" {
		title = requested
	}
	if p.Missing || p.Invalid {
		return Article{Title: title, Language: p.PageLanguage}
	}

	links := make([]langlinks.RawLink, 0, len(p.LangLinks))
	for _, link := range p.LangLinks {
		lang := strings.TrimSpace(link.Lang)
		target := strings.TrimSpace(link.URL)
		if lang == "" || target == "" {
			continue
		}
		links = append(links, langlinks.RawLink{Lang: lang, URL: target, Label: link.Title})
	}
	return Article{Title: title, Exists: true, Language: p.PageLanguage, Links: links}
}
