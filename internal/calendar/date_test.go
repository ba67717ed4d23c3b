package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := map[string]Date{
		"2025-03-10":                New(2025, time.March, 10),
		"2025-03-10T00:00:00Z":      New(2025, time.March, 10),
		"2025-03-10T23:30:00-05:00": New(2025, time.March, 10),
		"2024-02-29":                New(2024, time.February, 29),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDate(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2025-3-10", "2025/03/10", "2025-02-30", "2025-13-01", "tomorrow", "2025-03-10X"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestDateKeyUsesLocalWallClock(t *testing.T) {
	east := time.FixedZone("east", 14*3600)
	west := time.FixedZone("west", -12*3600)
	lateEast := time.Date(2026, 2, 9, 23, 30, 0, 0, east)
	earlyWest := time.Date(2026, 2, 9, 0, 15, 0, 0, west)
	if DateKey(lateEast) != "2026-02-09" {
		t.Fatalf("unexpected key for east: %s", DateKey(lateEast))
	}
	if DateKey(earlyWest) != "2026-02-09" {
		t.Fatalf("unexpected key for west: %s", DateKey(earlyWest))
	}
}

func TestDateArithmetic(t *testing.T) {
	d := New(2026, time.February, 28)
	if got := d.AddDays(1); got != New(2026, time.March, 1) {
		t.Fatalf("unexpected next day: %s", got)
	}
	if got := d.AddDays(-59); got != New(2025, time.December, 31) {
		t.Fatalf("unexpected back arithmetic: %s", got)
	}
	if !d.Before(d.AddDays(1)) || !d.After(d.AddDays(-1)) || d.Compare(d) != 0 {
		t.Fatal("unexpected comparison results")
	}
	if New(2026, time.January, 32) != New(2026, time.February, 1) {
		t.Fatal("expected New to normalize overflow")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Fatal("unexpected IsZero results")
	}
}
