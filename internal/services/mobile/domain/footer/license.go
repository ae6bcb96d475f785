package footer

import (
	"strings"

	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/wikititle"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/platform/htmlx"
)

const (
	keyCopyright   = "footer.copyright"
	keyConjunction = "footer.and"
)

// commonLicenses shortens the license names the installer offers.
var commonLicenses = map[string]string{
	"Creative Commons Attribution-Share Alike 3.0":            "CC BY-SA 3.0",
	"Creative Commons Attribution Share Alike":                "CC BY-SA",
	"Creative Commons Attribution 3.0":                        "CC BY 3.0",
	"Creative Commons Attribution 2.5":                        "CC BY 2.5",
	"Creative Commons Attribution":                            "CC BY",
	"Creative Commons Attribution Non-Commercial Share Alike": "CC BY-NC-SA",
	"Creative Commons Zero (Public Domain)":                   "CC0 (Public Domain)",
	"GNU Free Documentation License 1.3 or later":             "GFDL 1.3 or later",
}

// LicenseInfo is the license line source: the message to show, the link to
// pass it, and the plural form to select.
type LicenseInfo struct {
	MessageKey string
	Link       string
	// Plural is 2 when Link names more than one license, else 1.
	Plural int
}

// LicenseDecorator may replace the license link and message key, e.g. to
// credit a second license. where names the placement, such as "footer".
type LicenseDecorator interface {
	DecorateLicense(where string, link string, messageKey string) (string, string)
}

// LicenseDecoratorFunc adapts a function to LicenseDecorator.
type LicenseDecoratorFunc func(where, link, messageKey string) (string, string)

// DecorateLicense calls f.
func (f LicenseDecoratorFunc) DecorateLicense(where, link, messageKey string) (string, string) {
	return f(where, link, messageKey)
}

// PluralLicenseInfo returns 2 when license contains conjunction, else 1. An
// empty or disabled conjunction always yields 1.
//
// Several licenses are assumed to be joined with the localized "and"; this
// is a text match, not a parse of the license string.
func PluralLicenseInfo(license, conjunction string) int {
	if isDisabled(conjunction) || !strings.Contains(license, conjunction) {
		return 1
	}
	return 2
}

// License builds the license link for where and lets the license
// decorators adjust it.
func (a *Assembler) License(where string) LicenseInfo {
	link := ""
	if text := a.cfg.RightsText; text != "" {
		if short, ok := commonLicenses[text]; ok {
			text = short
		}
		switch {
		case a.cfg.RightsPage != "":
			if title, err := wikititle.Parse(a.cfg.RightsPage); err == nil {
				link = htmlx.RawElement("a", text,
					htmlx.A("href", a.cfg.Site.LocalURL(title, nil)),
					htmlx.A("title", title.PrefixedText()),
				)
			} else {
				link = text
			}
		case a.cfg.RightsURL != "":
			link = htmlx.Element("a", text,
				htmlx.A("class", "external"),
				htmlx.A("rel", "nofollow"),
				htmlx.A("href", a.cfg.RightsURL),
			)
		default:
			link = text
		}
	}

	key := keyCopyright
	for _, d := range a.licenseDecorators {
		link, key = d.DecorateLicense(where, link, key)
	}
	if link != "" {
		link = a.policy.Sanitize(link)
	}
	return LicenseInfo{
		MessageKey: key,
		Link:       link,
		Plural:     PluralLicenseInfo(link, tr(a.content, keyConjunction)),
	}
}

// LicenseText is the localized license sentence, or "" without a link.
func (a *Assembler) LicenseText(loc Localizer, info LicenseInfo) string {
	if info.Link == "" {
		return ""
	}
	return tr(loc, info.MessageKey, info.Plural, info.Link)
}
