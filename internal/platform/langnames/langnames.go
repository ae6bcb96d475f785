// Package langnames resolves wiki language codes to display names and
// BCP-47 tags.
package langnames

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var embeddedTables []byte

type tables struct {
	Names map[string]string `yaml:"names"`
	BCP47 map[string]string `yaml:"bcp47"`
}

var builtin = mustLoadTables(embeddedTables)

// Resolver maps wiki language codes to their autonyms.
type Resolver struct {
	names map[string]string
}

// NewResolver returns a Resolver. Entries in overrides take precedence over
// the built-in table; an empty name hides a code.
func NewResolver(overrides map[string]string) *Resolver {
	merged := make(map[string]string, len(builtin.Names)+len(overrides))
	for code, name := range builtin.Names {
		merged[code] = name
	}
	for code, name := range overrides {
		merged[strings.ToLower(strings.TrimSpace(code))] = strings.TrimSpace(name)
	}
	return &Resolver{names: merged}
}

// Name returns the autonym for code from the wiki name table, falling back to
// the CLDR autonym. Unknown or malformed codes report false.
func (r *Resolver) Name(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	names := builtin.Names
	if r != nil {
		names = r.names
	}
	if name, ok := names[code]; ok {
		return name, name != ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	name := display.Self.Name(tag)
	return name, name != ""
}

// BCP47 converts a wiki language or variant code to a BCP-47 tag.
func BCP47(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if mapped, ok := builtin.BCP47[code]; ok {
		return mapped
	}
	cased := caseSubtags(code)
	if tag, err := language.Parse(cased); err == nil {
		return tag.String()
	}
	return cased
}

// caseSubtags applies BCP-47 letter case conventions: two-letter region
// subtags upper case, four-letter script subtags title case, everything after
// a private-use singleton lower case.
func caseSubtags(code string) string {
	parts := strings.Split(code, "-")
	private := false
	for i, part := range parts {
		switch {
		case i == 0 || private:
		case part == "x":
			private = true
		case len(part) == 2:
			parts[i] = strings.ToUpper(part)
		case len(part) == 4:
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "-")
}

func mustLoadTables(data []byte) tables {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(fmt.Errorf("parse language tables: %w", err))
	}
	return t
}
