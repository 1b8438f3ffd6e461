package utils

import (
	"testing"
	"time"
)

func TestNaiveKeepsWallClock(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, 3, 14, 18, 42, 7, 0, loc)

	got := Naive(local)
	want := time.Date(2026, 3, 14, 18, 42, 7, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", got.Location())
	}
}

func TestNewNaiveClockRejectsUnknownZone(t *testing.T) {
	if _, err := NewNaiveClock("Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
	c, err := NewNaiveClock("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Location != time.UTC {
		t.Fatalf("expected UTC default, got %s", c.Location)
	}
}

func TestFixedClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := &FixedClock{T: start}
	c.Advance(11 * time.Minute)
	if !c.Now().Equal(start.Add(11 * time.Minute)) {
		t.Fatalf("unexpected time %s", c.Now())
	}
}
