package theming

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectorDefaults(t *testing.T) {
	selector := Default()

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != DefaultTheme || selection.Variant != DefaultVariant {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}
	if selection.Manifest == nil || selection.Manifest.Tokens["ss-color-primary"] == "" {
		t.Fatalf("expected manifest tokens")
	}
}

func TestSelectorDarkVariant(t *testing.T) {
	selection, err := Default().Select(DefaultTheme, "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := selection.Manifest.Variants["dark"].Tokens["ss-color-surface"]; got != "#1f2937" {
		t.Fatalf("dark surface token = %q", got)
	}
}

func TestSelectorErrors(t *testing.T) {
	selector := Default()

	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select(DefaultTheme, "sepia"); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if err := selector.Register(nil); err == nil {
		t.Fatalf("expected error registering nil manifest")
	}
}

func TestSelectorCheck(t *testing.T) {
	selector := Default()

	if err := selector.Check("", ""); err != nil {
		t.Fatalf("defaults should resolve: %v", err)
	}
	if err := selector.Check(DefaultTheme, "dark"); err != nil {
		t.Fatalf("dark should resolve: %v", err)
	}
	if err := selector.Check(DefaultTheme, "bogus"); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if err := selector.Check("campus", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestSelectorThemes(t *testing.T) {
	other := Manifest()
	other.Name = "campus"

	selector, err := NewSelector(Manifest(), other)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if diff := cmp.Diff([]string{"campus", DefaultTheme}, selector.Themes()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
}
