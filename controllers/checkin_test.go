package controllers

import (
	"errors"
	"testing"
	"time"
)

func localDay(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestDiffLocalDays(t *testing.T) {
	cases := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", localDay(2024, 3, 10, 12), localDay(2024, 3, 10, 12), 0},
		{"same day different hours", localDay(2024, 3, 10, 23), localDay(2024, 3, 10, 0), 0},
		{"next day just after midnight", localDay(2024, 3, 11, 0), localDay(2024, 3, 10, 23), 1},
		{"two days apart", localDay(2024, 3, 12, 1), localDay(2024, 3, 10, 23), 2},
		{"backwards", localDay(2024, 3, 9, 12), localDay(2024, 3, 10, 12), -1},
		{"across month boundary", localDay(2024, 4, 1, 8), localDay(2024, 3, 31, 20), 1},
	}

	for _, tc := range cases {
		if got := diffLocalDays(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: diffLocalDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestNextStreakFirstCheckin(t *testing.T) {
	got, err := nextStreak(nil, 0, localDay(2024, 3, 10, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("first check-in should start streak at 1, got %d", got)
	}
}

func TestNextStreakContinues(t *testing.T) {
	last := localDay(2024, 3, 10, 22)
	got, err := nextStreak(&last, 3, localDay(2024, 3, 11, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("day D+1 should continue streak to 4, got %d", got)
	}
}

func TestNextStreakSameDayFails(t *testing.T) {
	last := localDay(2024, 3, 10, 8)
	_, err := nextStreak(&last, 3, localDay(2024, 3, 10, 20))
	if !errors.Is(err, errAlreadyCheckedInToday) {
		t.Fatalf("expected errAlreadyCheckedInToday, got %v", err)
	}
}

func TestNextStreakResetsAfterGap(t *testing.T) {
	last := localDay(2024, 3, 10, 8)
	got, err := nextStreak(&last, 7, localDay(2024, 3, 12, 8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("gap of 2 days should reset streak to 1, got %d", got)
	}
}

func TestNextStreakResetsOnClockSkew(t *testing.T) {
	last := localDay(2024, 3, 10, 8)
	got, err := nextStreak(&last, 7, localDay(2024, 3, 8, 8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("negative day difference should reset streak to 1, got %d", got)
	}
}

func TestIsCheckedInToday(t *testing.T) {
	if isCheckedInToday(nil, time.Now()) {
		t.Error("no prior check-in must report false")
	}

	today := localDay(2024, 3, 10, 6)
	if !isCheckedInToday(&today, localDay(2024, 3, 10, 23)) {
		t.Error("same local day must report true")
	}

	yesterday := localDay(2024, 3, 9, 23)
	if isCheckedInToday(&yesterday, localDay(2024, 3, 10, 0)) {
		t.Error("previous day must report false")
	}
}

// isCheckedInToday and nextStreak share diffLocalDays; when the status check
// says today is done, a check-in at the same instant must refuse.
func TestCheckinChecksAgree(t *testing.T) {
	times := []time.Time{
		localDay(2024, 3, 10, 0),
		localDay(2024, 3, 10, 12),
		localDay(2024, 3, 10, 23),
		localDay(2024, 3, 11, 0),
		localDay(2024, 3, 12, 5),
	}
	last := localDay(2024, 3, 10, 9)

	for _, now := range times {
		_, err := nextStreak(&last, 1, now)
		conflicted := errors.Is(err, errAlreadyCheckedInToday)
		if conflicted != isCheckedInToday(&last, now) {
			t.Errorf("checks disagree at %v: streak err=%v, today=%v",
				now, err, isCheckedInToday(&last, now))
		}
	}
}
