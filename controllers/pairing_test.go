package controllers

import (
	"errors"
	"testing"

	"github.com/lovepoints/lovepoints/models"
)

func makeUser(id string, partner string) *models.User {
	u := &models.User{ID: id}
	if partner != "" {
		u.PartnerID = &partner
	}
	return u
}

func TestValidateRedeemSuccess(t *testing.T) {
	caller := makeUser("caller", "")
	owner := makeUser("owner", "")
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "owner"}

	if err := validateRedeem(caller, code, owner); err != nil {
		t.Fatalf("expected redeem to validate, got %v", err)
	}
}

func TestValidateRedeemCallerAlreadyLinked(t *testing.T) {
	caller := makeUser("caller", "someone")
	owner := makeUser("owner", "")
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "owner"}

	if err := validateRedeem(caller, code, owner); !errors.Is(err, errAlreadyLinked) {
		t.Fatalf("expected errAlreadyLinked, got %v", err)
	}
}

func TestValidateRedeemUsedCode(t *testing.T) {
	caller := makeUser("caller", "")
	owner := makeUser("owner", "")
	claimed := "earlier-caller"
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "owner", Used: true, ClaimedBy: &claimed}

	if err := validateRedeem(caller, code, owner); !errors.Is(err, errCodeAlreadyUsed) {
		t.Fatalf("expected errCodeAlreadyUsed, got %v", err)
	}
}

func TestValidateRedeemSelfLink(t *testing.T) {
	caller := makeUser("caller", "")
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "caller"}

	if err := validateRedeem(caller, code, caller); !errors.Is(err, errSelfLink) {
		t.Fatalf("expected errSelfLink, got %v", err)
	}
}

func TestValidateRedeemOwnerAlreadyLinked(t *testing.T) {
	caller := makeUser("caller", "")
	owner := makeUser("owner", "third-wheel")
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "owner"}

	if err := validateRedeem(caller, code, owner); !errors.Is(err, errPartnerAlreadyLinked) {
		t.Fatalf("expected errPartnerAlreadyLinked, got %v", err)
	}
}

// Used takes precedence over self-link: a consumed code reports the same
// failure to everyone, including its owner.
func TestValidateRedeemUsedBeatsSelfLink(t *testing.T) {
	caller := makeUser("caller", "")
	claimed := "someone"
	code := &models.PairCode{Code: "7K9QXM", OwnerID: "caller", Used: true, ClaimedBy: &claimed}

	if err := validateRedeem(caller, code, caller); !errors.Is(err, errCodeAlreadyUsed) {
		t.Fatalf("expected errCodeAlreadyUsed, got %v", err)
	}
}

// Redeem locks user rows in ascending id order so two users redeeming each
// other's codes at the same time cannot take them in opposite orders.
func TestRedeemLockOrder(t *testing.T) {
	cases := []struct {
		a, b          string
		first, second string
	}{
		{"aaa", "bbb", "aaa", "bbb"},
		{"bbb", "aaa", "aaa", "bbb"},
		{"same", "same", "same", "same"},
	}
	for _, tc := range cases {
		first, second := redeemLockOrder(tc.a, tc.b)
		if first != tc.first || second != tc.second {
			t.Errorf("redeemLockOrder(%q, %q) = %q, %q; want %q, %q",
				tc.a, tc.b, first, second, tc.first, tc.second)
		}
	}

	// The lock order and the pair id must agree on which id comes first.
	first, second := redeemLockOrder("zzz", "mmm")
	if models.PairID("zzz", "mmm") != first+"_"+second {
		t.Errorf("lock order %q,%q disagrees with pair id %q", first, second, models.PairID("zzz", "mmm"))
	}
}

// A fresh link must wake streams on the shared scope and on both former solo
// scopes, or a partner with an open stream never sees the pairing.
func TestRedeemEventScopes(t *testing.T) {
	scopes := redeemEventScopes("bob", "alice")
	want := map[string]bool{
		models.PairID("bob", "alice"): false,
		"bob":                         false,
		"alice":                       false,
	}
	for _, s := range scopes {
		if _, ok := want[s]; !ok {
			t.Errorf("unexpected scope %q", s)
		}
		want[s] = true
	}
	for s, seen := range want {
		if !seen {
			t.Errorf("scope %q not notified", s)
		}
	}
}

func TestChallengeScope(t *testing.T) {
	solo := makeUser("aaa", "")
	if got := challengeScope(solo); got != "aaa" {
		t.Errorf("unpaired scope should be own id, got %q", got)
	}

	paired := makeUser("bbb", "aaa")
	if got := challengeScope(paired); got != models.PairID("aaa", "bbb") {
		t.Errorf("paired scope should be pair id, got %q", got)
	}
}
