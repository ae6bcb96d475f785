// Package catalog loads the embedded locale catalogs and registers them with
// golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"
)

// Case is one plural branch of a message.
type Case struct {
	Selector string
	Text     string
}

// Plural is a message whose text is chosen by the plural category of one
// numeric argument.
type Plural struct {
	// Arg is the 1-based argument index the selection is made on.
	Arg   int
	Cases []Case
}

// Entry is a single catalog message: either plain text or a plural table.
type Entry struct {
	Text   string
	Plural *Plural
}

type catalogFile struct {
	Locale    string    `yaml:"locale"`
	Namespace string    `yaml:"namespace"`
	Messages  yaml.Node `yaml:"messages"`
}

type pluralNode struct {
	Plural int       `yaml:"plural"`
	Cases  yaml.Node `yaml:"cases"`
}

// LocaleCatalog stores all messages for one locale, grouped by namespace.
type LocaleCatalog struct {
	Locale     string
	Namespaces map[string]map[string]Entry
	Messages   map[string]Entry
}

// Bundle contains all locale catalogs loaded from disk.
type Bundle struct {
	locales map[string]*LocaleCatalog
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from the provided filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := bundle.addFile(path, file); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(path string, file catalogFile) error {
	localeFromPath := filepath.Base(filepath.Dir(path))
	namespaceFromPath := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", path, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace == "" {
		return fmt.Errorf("catalog %s: namespace is required", path)
	}
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", path, namespace, namespaceFromPath)
	}
	if file.Messages.Kind != yaml.MappingNode || len(file.Messages.Content) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}

	localeCatalog, ok := b.locales[locale]
	if !ok {
		localeCatalog = &LocaleCatalog{
			Locale:     locale,
			Namespaces: map[string]map[string]Entry{},
			Messages:   map[string]Entry{},
		}
		b.locales[locale] = localeCatalog
	}
	if _, exists := localeCatalog.Namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", path, namespace, locale)
	}

	namespaceMessages := make(map[string]Entry, len(file.Messages.Content)/2)
	for i := 0; i+1 < len(file.Messages.Content); i += 2 {
		key := strings.TrimSpace(file.Messages.Content[i].Value)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if !strings.HasPrefix(key, namespace+".") && key != namespace {
			return fmt.Errorf("catalog %s: key %q must be prefixed with namespace %q", path, key, namespace)
		}
		if _, exists := localeCatalog.Messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		entry, err := decodeEntry(file.Messages.Content[i+1])
		if err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", path, key, err)
		}
		localeCatalog.Messages[key] = entry
		namespaceMessages[key] = entry
	}

	localeCatalog.Namespaces[namespace] = namespaceMessages
	return nil
}

func decodeEntry(node *yaml.Node) (Entry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Entry{Text: node.Value}, nil
	case yaml.MappingNode:
		var raw pluralNode
		if err := node.Decode(&raw); err != nil {
			return Entry{}, err
		}
		if raw.Plural < 1 {
			return Entry{}, fmt.Errorf("plural argument index must be >= 1")
		}
		if raw.Cases.Kind != yaml.MappingNode || len(raw.Cases.Content) == 0 {
			return Entry{}, fmt.Errorf("plural cases are required")
		}
		p := &Plural{Arg: raw.Plural}
		hasOther := false
		for i := 0; i+1 < len(raw.Cases.Content); i += 2 {
			selector := strings.TrimSpace(raw.Cases.Content[i].Value)
			if selector == "other" {
				hasOther = true
			}
			p.Cases = append(p.Cases, Case{Selector: selector, Text: raw.Cases.Content[i+1].Value})
		}
		if !hasOther {
			return Entry{}, fmt.Errorf("plural cases must include \"other\"")
		}
		return Entry{Plural: p}, nil
	default:
		return Entry{}, fmt.Errorf("message must be a string or a plural mapping")
	}
}

// Register registers all catalog messages with x/text/message. Each locale is
// also registered under its base language so "de" resolves to "de-DE".
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "" && base.String() != "und" {
			baseTag, err := language.Parse(base.String())
			if err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := b.LocaleMessages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, registerTag := range tags {
				if err := register(registerTag, key, messages[key]); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

func register(tag language.Tag, key string, entry Entry) error {
	if entry.Plural == nil {
		return message.SetString(tag, key, entry.Text)
	}
	cases := make([]any, 0, len(entry.Plural.Cases)*2)
	for _, c := range entry.Plural.Cases {
		cases = append(cases, c.Selector, c.Text)
	}
	return message.Set(tag, key, plural.Selectf(entry.Plural.Arg, "%d", cases...))
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns an exact locale message map copy.
func (b *Bundle) LocaleMessages(locale string) map[string]Entry {
	if b == nil {
		return map[string]Entry{}
	}
	catalog, ok := b.locales[strings.TrimSpace(locale)]
	if !ok || catalog == nil {
		return map[string]Entry{}
	}
	return copyMap(catalog.Messages)
}

// Message returns one message entry with base-locale fallback.
func (b *Bundle) Message(locale string, key string) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}
	trimmedLocale := strings.TrimSpace(locale)
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return Entry{}, false
	}
	if catalog, ok := b.locales[trimmedLocale]; ok && catalog != nil {
		if value, exists := catalog.Messages[trimmedKey]; exists {
			return value, true
		}
	}
	if trimmedLocale != BaseLocale {
		if catalog, ok := b.locales[BaseLocale]; ok && catalog != nil {
			value, exists := catalog.Messages[trimmedKey]
			return value, exists
		}
	}
	return Entry{}, false
}

// Namespaces returns sorted namespace names for a locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	catalog, ok := b.locales[strings.TrimSpace(locale)]
	if !ok || catalog == nil {
		return nil
	}
	out := make([]string, 0, len(catalog.Namespaces))
	for namespace := range catalog.Namespaces {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

// MissingKeys lists base-locale keys that the given locale does not define.
func (b *Bundle) MissingKeys(locale string) []string {
	base := b.LocaleMessages(BaseLocale)
	have := b.LocaleMessages(locale)
	var out []string
	for key := range base {
		if _, ok := have[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func copyMap(source map[string]Entry) map[string]Entry {
	out := make(map[string]Entry, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
