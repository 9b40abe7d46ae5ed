package models

import "testing"

func TestPairIDSymmetric(t *testing.T) {
	a := "3f1c2b9a-0000-4000-8000-aaaaaaaaaaaa"
	b := "9d8e7f6a-0000-4000-8000-bbbbbbbbbbbb"

	if PairID(a, b) != PairID(b, a) {
		t.Fatalf("pair id not symmetric: %q vs %q", PairID(a, b), PairID(b, a))
	}
}

func TestPairIDOrdering(t *testing.T) {
	got := PairID("bbb", "aaa")
	if got != "aaa_bbb" {
		t.Errorf("expected lexicographic order aaa_bbb, got %q", got)
	}
}

func TestPairIDDistinctPairs(t *testing.T) {
	if PairID("a", "b") == PairID("a", "c") {
		t.Error("different pairs must derive different ids")
	}
}

func TestUserLinked(t *testing.T) {
	var u User
	if u.Linked() {
		t.Error("user without partner must not report linked")
	}

	empty := ""
	u.PartnerID = &empty
	if u.Linked() {
		t.Error("empty partner id must not report linked")
	}

	partner := "some-id"
	u.PartnerID = &partner
	if !u.Linked() {
		t.Error("user with partner must report linked")
	}
}

func TestChallengeCompleted(t *testing.T) {
	var c Challenge
	if c.Completed() {
		t.Error("open challenge must not report completed")
	}

	by := "user-1"
	c.CompletedBy = &by
	if !c.Completed() {
		t.Error("challenge with completer must report completed")
	}
}
