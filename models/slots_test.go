package models

import (
	"encoding/json"
	"testing"
)

func TestMinutesUnmarshal(t *testing.T) {
	cases := map[string]Minutes{
		`5`:     5,
		`"10"`:  10,
		`" 5 "`: 5,
		`7.5`:   0,
		`"7.5"`: 0,
		`"abc"`: 0,
		`null`:  0,
		`true`:  0,
		`[5]`:   0,
		`1e12`:  0,
		`-5`:    -5,
	}
	for in, want := range cases {
		var req HoldRequest
		if err := json.Unmarshal([]byte(`{"slotId":"s1","holdMinutes":`+in+`}`), &req); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if req.HoldMinutes != want || req.SlotID != "s1" {
			t.Errorf("holdMinutes %s decoded to %d, want %d", in, req.HoldMinutes, want)
		}
	}
}
