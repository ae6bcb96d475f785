package variants

import (
	"strings"
	"testing"
)

func variantURL(code string) string { return "/w/index.php?title=China&variant=" + code }

func TestListSkipsBaseAndKeepsOrder(t *testing.T) {
	t.Parallel()

	table := Builtin()
	got := List("sr", table.Variants("sr"), variantURL, strings.ToUpper, table)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Variant != "sr-ec" || got[1].Variant != "sr-el" {
		t.Fatalf("order = %q,%q, want sr-ec,sr-el", got[0].Variant, got[1].Variant)
	}
	want := VariantLink{Code: "SR-EC", Variant: "sr-ec", Name: "српски (ћирилица)", URL: variantURL("sr-ec")}
	if got[0] != want {
		t.Fatalf("link = %+v, want %+v", got[0], want)
	}
	for _, link := range got {
		if link.Variant == "sr" {
			t.Fatal("base variant listed")
		}
	}
}

func TestListSingleVariantIsEmpty(t *testing.T) {
	t.Parallel()

	table := Builtin()
	codes := table.Variants("en")
	if len(codes) != 1 || codes[0] != "en" {
		t.Fatalf("Variants(en) = %v, want [en]", codes)
	}
	if got := List("en", codes, variantURL, nil, table); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if got := List("en", nil, variantURL, nil, table); got == nil || len(got) != 0 {
		t.Fatalf("List(nil) = %#v, want empty slice", got)
	}
}

func TestListFallsBackToCodeForNames(t *testing.T) {
	t.Parallel()

	got := List("xx", []string{"xx", "xx-a", "xx-b"}, nil, nil, nil)
	if len(got) != 2 || got[0].Name != "xx-a" || got[0].Code != "xx-a" || got[0].URL != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestVariantsReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Builtin()
	codes := table.Variants("zh")
	codes[0] = "mutated"
	if table.Variants("zh")[0] != "zh" {
		t.Fatal("Variants exposed internal slice")
	}
}

func TestLoadRejectsEmptyLanguage(t *testing.T) {
	t.Parallel()

	if _, err := Load([]byte("languages:\n  zh: []\n")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Load([]byte("languages: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
