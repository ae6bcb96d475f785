// Package langlinks turns raw cross-language links into the sorted,
// display-ready list shown on the languages page.
package langlinks

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// RawLink is one cross-language link as returned by the action API.
type RawLink struct {
	// Lang is the wiki language code of the target wiki.
	Lang string
	// URL is the desktop URL of the target article.
	URL string
	// Label is the target article title, when known.
	Label string
}

// LanguageLink is a link ready for display. Name is never empty.
type LanguageLink struct {
	Code  string
	URL   string
	Name  string
	Label string
}

// NameTable resolves language codes to display names.
type NameTable interface {
	Name(code string) (string, bool)
}

// URLTransform rewrites a URL, e.g. from the desktop to the mobile site.
type URLTransform func(string) string

// Normalize drops links whose code has no display name, attaches the name,
// rewrites each URL through mobile and sorts by name ignoring case. Links
// with equal names keep their input order.
func Normalize(raw []RawLink, names NameTable, mobile URLTransform) []LanguageLink {
	if names == nil {
		return []LanguageLink{}
	}
	type keyed struct {
		key  string
		link LanguageLink
	}
	fold := cases.Fold()
	out := make([]keyed, 0, len(raw))
	for _, r := range raw {
		name, ok := names.Name(r.Lang)
		if !ok || name == "" {
			continue
		}
		u := r.URL
		if mobile != nil {
			u = mobile(u)
		}
		out = append(out, keyed{
			key:  fold.String(name),
			link: LanguageLink{Code: r.Lang, URL: u, Name: name, Label: r.Label},
		})
	}
	slices.SortStableFunc(out, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})

	links := make([]LanguageLink, len(out))
	for i, k := range out {
		links[i] = k.link
	}
	return links
}

// Dropped reports how many of raw Normalize would discard.
func Dropped(raw []RawLink, normalized []LanguageLink) int {
	return len(raw) - len(normalized)
}
