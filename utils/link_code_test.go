package utils

import (
	"crypto/rand"
	"errors"
	"strings"
	"testing"
)

func TestGenerateLinkCodeLength(t *testing.T) {
	code := GenerateLinkCode()
	if len(code) != LinkCodeLength {
		t.Fatalf("expected %d characters, got %d (%q)", LinkCodeLength, len(code), code)
	}
}

func TestGenerateLinkCodeAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateLinkCode()
		for _, r := range code {
			if !strings.ContainsRune(LinkCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestLinkCodeAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, r := range "01OILl" {
		if strings.ContainsRune(LinkCodeAlphabet, r) {
			t.Errorf("alphabet must not contain ambiguous glyph %q", r)
		}
	}
	if len(LinkCodeAlphabet) != 32 {
		t.Errorf("expected 32-symbol alphabet, got %d", len(LinkCodeAlphabet))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerateLinkCodePanicsWithoutEntropy(t *testing.T) {
	linkCodeReader = failingReader{}
	defer func() {
		linkCodeReader = rand.Reader
		if recover() == nil {
			t.Fatal("expected panic when the entropy source fails")
		}
	}()
	GenerateLinkCode()
}

func TestGenerateLinkCodeVaries(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		seen[GenerateLinkCode()] = struct{}{}
	}
	// 50 draws from a 32^6 space colliding down to one value would mean the
	// generator is broken, not unlucky.
	if len(seen) < 2 {
		t.Fatal("generator produced a single repeated code")
	}
}
