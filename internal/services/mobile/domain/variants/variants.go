// Package variants lists the script and orthography variants an article can
// be displayed in.
package variants

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// VariantLink points at the current article rendered in another variant.
type VariantLink struct {
	// Code is the BCP-47 tag of the variant.
	Code string
	// Variant is the wiki variant code, e.g. "zh-hans".
	Variant string
	Name    string
	URL     string
}

// Namer resolves variant codes to display names.
type Namer interface {
	VariantName(code string) string
}

// List returns links for every variant in codes except base. A language with
// at most one variant has none to offer. Order follows codes.
func List(base string, codes []string, url func(code string) string, tag func(code string) string, names Namer) []VariantLink {
	if len(codes) <= 1 {
		return []VariantLink{}
	}
	out := make([]VariantLink, 0, len(codes)-1)
	for _, code := range codes {
		if code == base {
			continue
		}
		link := VariantLink{Code: code, Variant: code, Name: code}
		if tag != nil {
			link.Code = tag(code)
		}
		if names != nil {
			if name := names.VariantName(code); name != "" {
				link.Name = name
			}
		}
		if url != nil {
			link.URL = url(code)
		}
		out = append(out, link)
	}
	return out
}

//go:embed variants.yaml
var embeddedTable []byte

// Table maps languages to their variants.
type Table struct {
	Languages map[string][]string `yaml:"languages"`
	Names     map[string]string   `yaml:"names"`
}

var builtin = mustLoad(embeddedTable)

// Builtin returns the embedded variant table. Callers must not modify it.
func Builtin() *Table {
	return builtin
}

func mustLoad(data []byte) *Table {
	t, err := Load(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Load parses a variant table document.
func Load(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse variant table: %w", err)
	}
	for lang, codes := range t.Languages {
		if len(codes) == 0 {
			return nil, fmt.Errorf("parse variant table: language %q has no variants", lang)
		}
	}
	return &t, nil
}

// Variants returns the variant codes for lang. Languages without variants
// report only themselves.
func (t *Table) Variants(lang string) []string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if t != nil {
		if codes, ok := t.Languages[lang]; ok {
			out := make([]string, len(codes))
			copy(out, codes)
			return out
		}
	}
	if lang == "" {
		return nil
	}
	return []string{lang}
}

// VariantName returns the display name of a variant code, or "".
func (t *Table) VariantName(code string) string {
	if t == nil {
		return ""
	}
	return t.Names[strings.ToLower(strings.TrimSpace(code))]
}
