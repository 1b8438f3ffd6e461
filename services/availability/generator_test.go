package availability

import (
	"context"
	"testing"
	"time"

	"slotbook/database/memstore"
	"slotbook/models"
	"slotbook/services/timeofday"

	"go.uber.org/zap"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func decl(start, end string, breaks ...models.Break) *models.Availability {
	return &models.Availability{
		ProviderID:  "prov-1",
		Date:        testDay,
		IsAvailable: true,
		StartTime:   start,
		EndTime:     end,
		Breaks:      breaks,
	}
}

func TestPlanSlotsBreakOmitsOverlappingCandidates(t *testing.T) {
	plan, err := PlanSlots(decl("09:00", "09:30", models.Break{StartTime: "09:10", EndTime: "09:20"}), 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan) != 0 {
		t.Fatalf("expected no slots around a mid-grid break, got %v", plan)
	}
}

func TestPlanSlotsStayInsideWindowAndOutsideBreaks(t *testing.T) {
	cases := []struct {
		name     string
		a        *models.Availability
		duration int
		want     int
	}{
		{"plain day", decl("09:00", "17:00"), 15, 32},
		{"partial tail dropped", decl("09:00", "10:10"), 30, 2},
		{"lunch break", decl("09:00", "13:00", models.Break{StartTime: "11:00", EndTime: "12:00"}), 30, 6},
		{"break off grid", decl("09:00", "11:00", models.Break{StartTime: "09:50", EndTime: "10:05"}), 15, 6},
		{"adjacent break boundary", decl("09:00", "10:00", models.Break{StartTime: "09:30", EndTime: "09:45"}), 15, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := PlanSlots(tc.a, tc.duration)
			if err != nil {
				t.Fatal(err)
			}
			if len(plan) != tc.want {
				t.Fatalf("expected %d slots, got %d: %v", tc.want, len(plan), plan)
			}
			start, _ := timeofday.ToMinutes(tc.a.StartTime)
			end, _ := timeofday.ToMinutes(tc.a.EndTime)
			for _, iv := range plan {
				if iv.Start < start || iv.End > end || iv.End-iv.Start != tc.duration {
					t.Fatalf("slot %v escapes window [%d,%d)", iv, start, end)
				}
				for _, br := range tc.a.Breaks {
					bs, _ := timeofday.ToMinutes(br.StartTime)
					be, _ := timeofday.ToMinutes(br.EndTime)
					if iv.Start < be && iv.End > bs {
						t.Fatalf("slot %v overlaps break %v", iv, br)
					}
				}
			}
		})
	}
}

func newGenerator(store *memstore.Store) *Generator {
	return &Generator{Slots: store.Slots(), Duration: 30, Logger: zap.NewNop()}
}

func availableStarts(t *testing.T, store *memstore.Store) []time.Time {
	t.Helper()
	dayStart, dayEnd := DayBounds(testDay)
	slots, err := store.Slots().GetByProviderAndRange(context.Background(), "prov-1", dayStart, dayEnd)
	if err != nil {
		t.Fatal(err)
	}
	var out []time.Time
	for _, s := range slots {
		if s.Status == models.SlotAvailable {
			out = append(out, s.StartDateTime)
		}
	}
	return out
}

func TestRegenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	g := newGenerator(store)
	a := decl("09:00", "12:00", models.Break{StartTime: "10:00", EndTime: "10:30"})
	now := testDay.Add(-24 * time.Hour)

	first, err := g.Regenerate(ctx, a, now)
	if err != nil {
		t.Fatal(err)
	}
	before := availableStarts(t, store)

	second, err := g.Regenerate(ctx, a, now)
	if err != nil {
		t.Fatal(err)
	}
	after := availableStarts(t, store)

	if first != 5 || second != 5 {
		t.Fatalf("expected 5 slots each run, got %d and %d", first, second)
	}
	if len(before) != len(after) {
		t.Fatalf("slot sets differ: %v vs %v", before, after)
	}
	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Fatalf("slot sets differ at %d: %v vs %v", i, before[i], after[i])
		}
	}
	if got := before[0]; !got.Equal(testDay.Add(9 * time.Hour)) {
		t.Fatalf("first slot should be stored naively at 09:00 UTC, got %v", got)
	}
}

func TestRegeneratePreservesBookedSlots(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	g := newGenerator(store)
	now := testDay.Add(-24 * time.Hour)

	if _, err := g.Regenerate(ctx, decl("09:00", "11:00"), now); err != nil {
		t.Fatal(err)
	}
	starts := availableStarts(t, store)
	slots := store.Slots()
	dayStart, dayEnd := DayBounds(testDay)
	all, _ := slots.GetByProviderAndRange(ctx, "prov-1", dayStart, dayEnd)
	var target models.Slot
	for _, s := range all {
		if s.StartDateTime.Equal(starts[1]) {
			target = s
		}
	}
	if _, err := slots.Hold(ctx, target.ID, "cons-1", now, now.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := slots.Commit(ctx, target.ID, "cons-1", now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	// Same window again, then an unavailable day: the booking must survive both.
	if _, err := g.Regenerate(ctx, decl("09:00", "11:00"), now); err != nil {
		t.Fatal(err)
	}
	all, _ = slots.GetByProviderAndRange(ctx, "prov-1", dayStart, dayEnd)
	if len(all) != 4 {
		t.Fatalf("expected 3 regenerated + 1 booked slot, got %d", len(all))
	}
	seen := map[int64]bool{}
	for _, s := range all {
		if seen[s.StartDateTime.UnixMilli()] {
			t.Fatalf("duplicate slot start %v", s.StartDateTime)
		}
		seen[s.StartDateTime.UnixMilli()] = true
	}

	off := &models.Availability{ProviderID: "prov-1", Date: testDay, IsAvailable: false}
	n, err := g.Regenerate(ctx, off, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("unavailable day inserted %d slots", n)
	}
	all, _ = slots.GetByProviderAndRange(ctx, "prov-1", dayStart, dayEnd)
	if len(all) != 1 || all[0].ID != target.ID || all[0].Status != models.SlotBooked {
		t.Fatalf("booked slot not preserved: %+v", all)
	}
}
