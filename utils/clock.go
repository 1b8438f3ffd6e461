package utils

import (
	"fmt"
	"time"
)

// Clock supplies the current instant to the slot engine.
type Clock interface {
	Now() time.Time
}

// NaiveClock reports the current wall-clock time of Location re-expressed
// as a UTC instant with the same fields. Slots store declared local times
// the same way, so both sides compare in one frame.
type NaiveClock struct {
	Location *time.Location
}

// NewNaiveClock loads the named IANA zone ("UTC" when empty).
func NewNaiveClock(zone string) (*NaiveClock, error) {
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid slot timezone %q: %w", zone, err)
	}
	return &NaiveClock{Location: loc}, nil
}

func (c *NaiveClock) Now() time.Time {
	return Naive(time.Now().In(c.Location))
}

// Naive drops the zone of t, keeping its wall-clock fields, truncated to
// the millisecond precision MongoDB stores.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC).
		Truncate(time.Millisecond)
}

// FixedClock always returns T. Tests advance it by assigning T.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// FromNaive interprets the wall-clock fields of a naive instant in loc,
// yielding the real instant it denotes.
func FromNaive(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
