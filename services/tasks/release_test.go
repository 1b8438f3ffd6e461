package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"slotbook/models"
	"slotbook/utils"
)

func TestNewReleaseTask(t *testing.T) {
	expiry := time.Date(2025, 3, 10, 8, 10, 0, 0, time.UTC)
	task, opts, err := NewReleaseTask(models.ReleasePayload{SlotID: "s1", ProviderID: "p1", LockExpiry: expiry}, expiry)
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TypeReleaseHold {
		t.Fatalf("unexpected task type %q", task.Type())
	}
	if len(opts) != 2 {
		t.Fatalf("expected ProcessAt and MaxRetry options, got %d", len(opts))
	}

	var got models.ReleasePayload
	if err := json.Unmarshal(task.Payload(), &got); err != nil {
		t.Fatal(err)
	}
	if got.SlotID != "s1" || got.ProviderID != "p1" || !got.LockExpiry.Equal(expiry) {
		t.Fatalf("payload mismatch: %+v", got)
	}
}

func TestFromNaiveUsesSlotZone(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	naive := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	real := utils.FromNaive(naive, loc)
	if want := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC); !real.Equal(want) {
		t.Fatalf("expected %v, got %v", want, real.UTC())
	}
}
