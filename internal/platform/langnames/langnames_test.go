package langnames

import (
	"strings"
	"testing"
)

func TestResolverName(t *testing.T) {
	t.Parallel()

	r := NewResolver(map[string]string{"de": "Deutsch (DE)", "fr": ""})
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{code: "en", want: "English", wantOK: true},
		{code: "ES", want: "español", wantOK: true},
		{code: "simple", want: "Simple English", wantOK: true},
		{code: "zh-min-nan", want: "Bân-lâm-gú", wantOK: true},
		{code: "de", want: "Deutsch (DE)", wantOK: true},
		{code: "fr", want: "", wantOK: false},
		{code: "xyz", want: "", wantOK: false},
		{code: "", want: "", wantOK: false},
		{code: "not a code", want: "", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := r.Name(tc.code)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Name(%q) = (%q, %v), want (%q, %v)", tc.code, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNilResolverUsesBuiltinTable(t *testing.T) {
	t.Parallel()

	var r *Resolver
	if got, ok := r.Name("de"); !ok || got != "Deutsch" {
		t.Fatalf("Name(de) = (%q, %v), want (Deutsch, true)", got, ok)
	}
	if got, ok := r.Name("la"); !ok || got != "Latina" {
		t.Fatalf("Name(la) = (%q, %v), want (Latina, true)", got, ok)
	}
}

func TestResolverNamesWikiCodes(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	codes := []string{
		"ace", "an", "ang", "arc", "bar", "bcl", "bpy", "ceb", "crh", "diq",
		"ext", "frr", "gan", "hak", "hif", "ia", "ilo", "io", "jbo", "kaa",
		"ku", "la", "lad", "lij", "lmo", "min", "mrj", "nap", "nds", "nov",
		"oc", "pam", "pdc", "pms", "pnb", "rmy", "scn", "sco", "szl", "tet",
		"tpi", "vec", "vls", "vo", "war", "wuu", "xmf",
		"en", "de", "fr", "ja", "zh", "ru", "ar", "he", "sr", "no", "nb",
	}
	for _, code := range codes {
		if name, ok := r.Name(code); !ok || name == "" {
			t.Fatalf("Name(%q) = (%q, %v), want a name", code, name, ok)
		}
	}

	tests := map[string]string{
		"la":  "Latina",
		"oc":  "occitan",
		"ceb": "Cebuano",
		"war": "Winaray",
		"ku":  "kurdî",
		"no":  "norsk",
		"sr":  "српски / srpski",
	}
	for code, want := range tests {
		if got, _ := r.Name(code); got != want {
			t.Fatalf("Name(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestResolverFallsBackToCLDR(t *testing.T) {
	t.Parallel()

	if _, ok := builtin.Names["fil"]; ok {
		t.Fatal("fil is in the built-in table; pick another fallback code")
	}
	if got, ok := NewResolver(nil).Name("fil"); !ok || got != "Filipino" {
		t.Fatalf("Name(fil) = (%q, %v), want (Filipino, true)", got, ok)
	}
}

func TestBuiltinTableIsComplete(t *testing.T) {
	t.Parallel()

	if got := len(builtin.Names); got < 450 {
		t.Fatalf("built-in names = %d, want at least 450", got)
	}
	for code, name := range builtin.Names {
		if code != strings.ToLower(code) || strings.TrimSpace(name) == "" {
			t.Fatalf("bad built-in entry %q: %q", code, name)
		}
	}
}

func TestBCP47(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"sr-ec":      "sr-Cyrl",
		"sr-el":      "sr-Latn",
		"zh-hans":    "zh-Hans",
		"zh-tw":      "zh-TW",
		"kk-cyrl":    "kk-Cyrl",
		"simple":     "en-simple",
		"be-x-old":   "be-tarask",
		"zh-min-nan": "nan",
		"de":         "de",
		"EN-gb":      "en-GB",
		"":           "",
	}
	for in, want := range tests {
		if got := BCP47(in); got != want {
			t.Fatalf("BCP47(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCaseSubtagsPrivateUse(t *testing.T) {
	t.Parallel()

	if got, want := caseSubtags("de-x-formal-ch"), "de-x-formal-ch"; got != want {
		t.Fatalf("caseSubtags = %q, want %q", got, want)
	}
	if got, want := caseSubtags("sgn-be-latn"), "sgn-BE-Latn"; got != want {
		t.Fatalf("caseSubtags = %q, want %q", got, want)
	}
}
