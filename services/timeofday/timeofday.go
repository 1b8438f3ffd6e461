// Package timeofday converts 24-hour "HH:mm" strings to minute offsets
// since midnight and back.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay is the exclusive upper bound of a time-of-day offset.
const MinutesPerDay = 24 * 60

var pattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// FormatError reports a malformed time of day.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected 24-hour HH:mm", e.Value)
}

// ToMinutes returns the offset of s since midnight.
func ToMinutes(s string) (int, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Value: s}
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// FromMinutes formats an offset since midnight as "HH:mm". Offsets of a
// full day or more wrap around.
func FromMinutes(offset int) string {
	offset %= MinutesPerDay
	if offset < 0 {
		offset += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", offset/60, offset%60)
}

// Valid reports whether s is a well-formed time of day.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
