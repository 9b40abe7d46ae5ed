package controllers

import (
	"strings"
	"testing"
)

func TestOAuthAccountEmailNormalizes(t *testing.T) {
	got := oauthAccountEmail("github", &oauthUser{ID: "42", Email: "  Pat@Example.COM "})
	if got != "pat@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}

// Providers can withhold the email; the synthetic address must be non-empty
// and distinct per provider identity so the unique email column never
// collides.
func TestOAuthAccountEmailFallback(t *testing.T) {
	a := oauthAccountEmail("GitHub", &oauthUser{ID: "42"})
	b := oauthAccountEmail("github", &oauthUser{ID: "43"})
	c := oauthAccountEmail("google", &oauthUser{ID: "42"})

	for _, e := range []string{a, b, c} {
		if e == "" {
			t.Fatal("fallback email is empty")
		}
		if !strings.Contains(e, "@") {
			t.Fatalf("fallback %q is not an address", e)
		}
		if e != strings.ToLower(e) {
			t.Fatalf("fallback %q is not lowercased", e)
		}
	}
	if a == b || a == c || b == c {
		t.Fatalf("fallback emails collide: %q %q %q", a, b, c)
	}
}
