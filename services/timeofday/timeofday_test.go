package timeofday

import (
	"errors"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:15", 555},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToMinutesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9:00", "09:0", "24:00", "12:60", "0900", "09:00:00", "ab:cd", " 09:00"} {
		_, err := ToMinutes(in)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ToMinutes(%q): expected FormatError, got %v", in, err)
			continue
		}
		if fe.Value != in {
			t.Errorf("FormatError.Value = %q, want %q", fe.Value, in)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		5:    "00:05",
		555:  "09:15",
		1439: "23:59",
		1440: "00:00",
		-15:  "23:45",
	}
	for in, want := range cases {
		if got := FromMinutes(in); got != want {
			t.Errorf("FromMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		back, err := ToMinutes(FromMinutes(m))
		if err != nil || back != m {
			t.Fatalf("round trip of %d gave %d (%v)", m, back, err)
		}
	}
}
