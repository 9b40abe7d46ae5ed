package controllers

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	got, err := normalizeTitle("  Surprise your partner  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Surprise your partner" {
		t.Errorf("expected trimmed title, got %q", got)
	}
}

func TestNormalizeTitleEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, err := normalizeTitle(raw); !errors.Is(err, errEmptyTitle) {
			t.Errorf("raw %q: expected errEmptyTitle, got %v", raw, err)
		}
	}
}

func TestNormalizeTitleStripsMarkup(t *testing.T) {
	got, err := normalizeTitle(`cook <b>dinner</b><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<") || strings.Contains(got, "script") {
		t.Errorf("markup survived sanitization: %q", got)
	}

	// Titles that are nothing but markup trim down to empty.
	if _, err := normalizeTitle("<b></b>"); !errors.Is(err, errEmptyTitle) {
		t.Errorf("markup-only title should be rejected, got %v", err)
	}
}

func TestNormalizeTitleCapsLength(t *testing.T) {
	long := strings.Repeat("a", 600)
	got, err := normalizeTitle(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(got)) != 255 {
		t.Errorf("expected 255-rune cap, got %d", len([]rune(got)))
	}
}
