// Package i18n defines the interface languages the service ships catalogs for.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	_ "github.com/louisbranch/mobilefrontend/internal/platform/i18n/catalog"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("de-DE"),
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the tags with a registered catalog, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback interface language.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it matches a supported tag with
// at least high confidence.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for a preference list such as a
// parsed Accept-Language header.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
