package availability

import (
	"context"
	"fmt"
	"time"

	timeslotRepo "slotbook/database/repository/timeslot"
	"slotbook/models"
	"slotbook/services/timeofday"

	"go.uber.org/zap"
)

// DefaultSlotDuration is used when no duration is configured.
const DefaultSlotDuration = 15

// Interval is a half-open [Start, End) range of minutes since midnight.
type Interval struct {
	Start, End int
}

func (i Interval) overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// PlanSlots lays out the fixed-length candidates of a validated, available
// declaration. Candidates that intersect a break are omitted.
func PlanSlots(a *models.Availability, duration int) ([]Interval, error) {
	if !a.IsAvailable {
		return nil, nil
	}
	if duration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", duration)
	}
	start, err := timeofday.ToMinutes(a.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := timeofday.ToMinutes(a.EndTime)
	if err != nil {
		return nil, err
	}
	breaks := make([]Interval, 0, len(a.Breaks))
	for _, br := range a.Breaks {
		bs, err := timeofday.ToMinutes(br.StartTime)
		if err != nil {
			return nil, err
		}
		be, err := timeofday.ToMinutes(br.EndTime)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, Interval{bs, be})
	}

	var out []Interval
	for current := start; current+duration <= end; current += duration {
		candidate := Interval{current, current + duration}
		clash := false
		for _, br := range breaks {
			if candidate.overlaps(br) {
				clash = true
				break
			}
		}
		if !clash {
			out = append(out, candidate)
		}
	}
	return out, nil
}

// DayBounds returns the naive [00:00, 24:00) range of the declared day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Generator rebuilds the slots of one provider day from its declaration.
type Generator struct {
	Slots    timeslotRepo.TimeSlotRepository
	Duration int // minutes
	Logger   *zap.Logger
}

// Regenerate removes every non-booked slot of the day and inserts fresh
// available slots. Booked slots survive, and candidates that share time
// with a booked slot (including the same start) are skipped. Run it inside a transaction so readers
// never see a half-built day.
func (g *Generator) Regenerate(ctx context.Context, a *models.Availability, now time.Time) (int, error) {
	dayStart, dayEnd := DayBounds(a.Date)

	// Step 1: clear regenerable slots
	removed, err := g.Slots.DeleteRegenerable(ctx, a.ProviderID, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}
	if !a.IsAvailable {
		g.Logger.Info("Cleared slots for unavailable day",
			zap.String("providerID", a.ProviderID),
			zap.Time("date", dayStart),
			zap.Int64("removed", removed))
		return 0, nil
	}

	// Step 2: lay out candidates
	duration := g.Duration
	if duration <= 0 {
		duration = DefaultSlotDuration
	}
	plan, err := PlanSlots(a, duration)
	if err != nil {
		return 0, fmt.Errorf("failed to plan slots: %w", err)
	}

	// Step 3: keep clear of committed bookings
	booked, err := g.Slots.FindCommitted(ctx, a.ProviderID, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}
	slots := make([]models.Slot, 0, len(plan))
	for _, iv := range plan {
		startAt := dayStart.Add(time.Duration(iv.Start) * time.Minute)
		endAt := dayStart.Add(time.Duration(iv.End) * time.Minute)
		if collides(booked, startAt, endAt) {
			continue
		}
		slots = append(slots, models.Slot{
			ProviderID:       a.ProviderID,
			StartDateTime:    startAt,
			EndDateTime:      endAt,
			Status:           models.SlotAvailable,
			IsActive:         true,
			LastStatusChange: now,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	// Step 4: bulk insert
	inserted, err := g.Slots.InsertMany(ctx, slots)
	if err != nil {
		return 0, err
	}
	g.Logger.Info("Regenerated slots",
		zap.String("providerID", a.ProviderID),
		zap.Time("date", dayStart),
		zap.Int64("removed", removed),
		zap.Int("inserted", inserted),
		zap.Int("preservedBooked", len(booked)))
	return inserted, nil
}

func collides(booked []models.Slot, start, end time.Time) bool {
	for _, b := range booked {
		if start.Equal(b.StartDateTime) || (start.Before(b.EndDateTime) && end.After(b.StartDateTime)) {
			return true
		}
	}
	return false
}
