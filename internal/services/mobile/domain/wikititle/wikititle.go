// Package wikititle normalizes wiki page titles and builds their URLs.
package wikititle

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalid reports a title that cannot name a page.
var ErrInvalid = errors.New("invalid title")

const maxTitleBytes = 255

// namespaces lists the canonical namespace prefixes that are split off
// before first-letter capitalization.
var namespaces = map[string]string{
	"category": "Category",
	"file":     "File",
	"help":     "Help",
	"media":    "Media",
	"project":  "Project",
	"special":  "Special",
	"talk":     "Talk",
	"template": "Template",
	"user":     "User",
}

// Title is a normalized page title.
type Title struct {
	namespace string
	text      string
}

// Parse normalizes text into a Title. Underscores become spaces, runs of
// whitespace collapse, and the first letter of the namespace and page name
// is upper cased.
func Parse(text string) (Title, error) {
	normalized := strings.Join(strings.Fields(strings.ReplaceAll(text, "_", " ")), " ")
	normalized = strings.TrimPrefix(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return Title{}, fmt.Errorf("%w: empty", ErrInvalid)
	}
	if len(normalized) > maxTitleBytes {
		return Title{}, fmt.Errorf("%w: longer than %d bytes", ErrInvalid, maxTitleBytes)
	}
	if !utf8.ValidString(normalized) {
		return Title{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalid)
	}
	for _, r := range normalized {
		if unicode.IsControl(r) || strings.ContainsRune("#<>[]|{}", r) {
			return Title{}, fmt.Errorf("%w: illegal character %q", ErrInvalid, r)
		}
	}

	var title Title
	if prefix, rest, ok := strings.Cut(normalized, ":"); ok {
		if canonical, known := namespaces[strings.ToLower(strings.TrimSpace(prefix))]; known {
			title.namespace = canonical
			normalized = strings.TrimSpace(rest)
		}
	}
	if normalized == "" {
		return Title{}, fmt.Errorf("%w: empty page name", ErrInvalid)
	}
	title.text = upperFirst(normalized)
	return title, nil
}

// MustParse is Parse for titles known to be valid.
func MustParse(text string) Title {
	title, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return title
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Namespace returns the canonical namespace prefix, empty for articles.
func (t Title) Namespace() string { return t.namespace }

// Text returns the page name without its namespace.
func (t Title) Text() string { return t.text }

// PrefixedText returns the display form, e.g. "Project:Privacy policy".
func (t Title) PrefixedText() string {
	if t.namespace == "" {
		return t.text
	}
	return t.namespace + ":" + t.text
}

// DBKey returns the underscore form used in URLs.
func (t Title) DBKey() string {
	return strings.ReplaceAll(t.PrefixedText(), " ", "_")
}

// IsZero reports whether t is the zero Title.
func (t Title) IsZero() bool { return t.text == "" }

// Site describes where a wiki's pages are served.
type Site struct {
	// Server is the scheme and host, e.g. "https://en.wikipedia.org" or
	// the protocol-relative "//en.wikipedia.org".
	Server string
	// ArticlePath contains "$1" where the encoded title goes.
	ArticlePath string
	// ScriptPath is the entry point used when a query string is needed.
	ScriptPath string
	// ProjectNamespace replaces the "Project" namespace in URLs.
	ProjectNamespace string
}

// LocalURL returns the server-relative URL of t with optional query values.
func (s Site) LocalURL(t Title, query url.Values) string {
	key := s.urlKey(t)
	if len(query) == 0 {
		path := s.ArticlePath
		if path == "" {
			path = "/wiki/$1"
		}
		return strings.Replace(path, "$1", Encode(key), 1)
	}
	script := s.ScriptPath
	if script == "" {
		script = "/w/index.php"
	}
	return script + "?title=" + Encode(key) + "&" + query.Encode()
}

// FullURL returns the absolute URL of t.
func (s Site) FullURL(t Title, query url.Values) string {
	return strings.TrimSuffix(s.Server, "/") + s.LocalURL(t, query)
}

// ProtocolRelative strips the scheme from an absolute URL and prefixes a
// server-relative one with the server host.
func (s Site) ProtocolRelative(target string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		target = strings.TrimSuffix(s.Server, "/") + target
	}
	if i := strings.Index(target, "//"); i > 0 && !strings.Contains(target[:i], "/") {
		return target[i:]
	}
	return target
}

// InternalOrExternalURL returns target unchanged when it already is an
// absolute or protocol-relative URL, else the local URL of the page it names.
// An unparseable page name yields "".
func (s Site) InternalOrExternalURL(target string) string {
	target = strings.TrimSpace(target)
	if isExternal(target) {
		return target
	}
	title, err := Parse(target)
	if err != nil {
		return ""
	}
	return s.LocalURL(title, nil)
}

func (s Site) urlKey(t Title) string {
	if t.namespace == "Project" && s.ProjectNamespace != "" {
		return strings.ReplaceAll(s.ProjectNamespace+":"+t.text, " ", "_")
	}
	return t.DBKey()
}

func isExternal(target string) bool {
	if strings.HasPrefix(target, "//") {
		return true
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto", "ftp":
		return u.Opaque != "" || u.Host != ""
	default:
		return false
	}
}

var urlUnescaper = strings.NewReplacer(
	"%3B", ";", "%40", "@", "%24", "$", "%21", "!", "%2A", "*",
	"%28", "(", "%29", ")", "%2C", ",", "%2F", "/", "%7E", "~", "%3A", ":",
)

// Encode escapes a title key for use in a URL path, leaving the characters
// wikis conventionally keep readable.
func Encode(key string) string {
	return urlUnescaper.Replace(url.QueryEscape(key))
}
