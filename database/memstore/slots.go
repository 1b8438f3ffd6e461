package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slotbook/database/repository"
	"slotbook/models"

	"github.com/google/uuid"
)

// SlotStore implements timeslotRepo.TimeSlotRepository.
type SlotStore struct{ s *Store }

func (r *SlotStore) EnsureIndexes(ctx context.Context) error { return nil }

func sortSlots(slots []models.Slot) []models.Slot {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartDateTime.Before(slots[j].StartDateTime)
	})
	return slots
}

func (r *SlotStore) filter(ctx context.Context, keep func(models.Slot) bool) []models.Slot {
	defer r.s.lock(ctx)()
	out := []models.Slot{}
	for _, slot := range r.s.slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return sortSlots(out)
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *SlotStore) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	defer r.s.lock(ctx)()
	slot, ok := r.s.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("failed to get slot: %w", repository.ErrNotFound)
	}
	return &slot, nil
}

func (r *SlotStore) GetByProviderAndRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error) {
	return r.filter(ctx, func(slot models.Slot) bool {
		return slot.ProviderID == providerID && inRange(slot.StartDateTime, from, to)
	}), nil
}

func (r *SlotStore) FindAvailable(ctx context.Context, providerID string, from time.Time) ([]models.Slot, error) {
	return r.filter(ctx, func(slot models.Slot) bool {
		return slot.ProviderID == providerID &&
			slot.Status == models.SlotAvailable &&
			slot.IsActive &&
			!slot.StartDateTime.Before(from)
	}), nil
}

func (r *SlotStore) FindCommitted(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error) {
	return r.filter(ctx, func(slot models.Slot) bool {
		return slot.ProviderID == providerID &&
			slot.Status == models.SlotBooked &&
			inRange(slot.StartDateTime, from, to)
	}), nil
}

func (r *SlotStore) SummarizeAvailable(ctx context.Context, from time.Time) ([]models.ProviderSlotSummary, error) {
	defer r.s.lock(ctx)()
	byProvider := map[string]*models.ProviderSlotSummary{}
	for _, slot := range r.s.slots {
		if slot.Status != models.SlotAvailable || !slot.IsActive || slot.StartDateTime.Before(from) {
			continue
		}
		sum, ok := byProvider[slot.ProviderID]
		if !ok {
			sum = &models.ProviderSlotSummary{ProviderID: slot.ProviderID, NextAvailableSlot: slot.StartDateTime}
			byProvider[slot.ProviderID] = sum
		}
		sum.AvailableSlotsCount++
		if slot.StartDateTime.Before(sum.NextAvailableSlot) {
			sum.NextAvailableSlot = slot.StartDateTime
		}
	}
	out := make([]models.ProviderSlotSummary, 0, len(byProvider))
	for _, sum := range byProvider {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextAvailableSlot.Before(out[j].NextAvailableSlot)
	})
	return out, nil
}

// update applies mutate to the slot when match holds.
func (r *SlotStore) update(ctx context.Context, slotID, op string, match func(models.Slot) bool, mutate func(*models.Slot)) (*models.Slot, error) {
	defer r.s.lock(ctx)()
	slot, ok := r.s.slots[slotID]
	if !ok || !match(slot) {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNoMatch)
	}
	mutate(&slot)
	r.s.slots[slotID] = slot
	return &slot, nil
}

// lockLapsed treats a missing expiry as lapsed, like the store filters.
func lockLapsed(slot models.Slot, now time.Time) bool {
	return slot.LockExpiry == nil || !slot.LockExpiry.After(now)
}

func makeAvailable(slot *models.Slot, now time.Time) {
	slot.Status = models.SlotAvailable
	slot.LockedBy = ""
	slot.LockExpiry = nil
	slot.LastStatusChange = now
	slot.UpdatedAt = now
}

func (r *SlotStore) Hold(ctx context.Context, slotID, requesterID string, now, expiry time.Time) (*models.Slot, error) {
	match := func(slot models.Slot) bool {
		if !slot.IsActive || !slot.StartDateTime.After(now) {
			return false
		}
		switch slot.Status {
		case models.SlotAvailable:
			return true
		case models.SlotLocked:
			return lockLapsed(slot, now) || slot.LockedBy == requesterID
		}
		return false
	}
	return r.update(ctx, slotID, "failed to hold slot", match, func(slot *models.Slot) {
		exp := expiry
		slot.Status = models.SlotLocked
		slot.LockedBy = requesterID
		slot.LockExpiry = &exp
		slot.LastStatusChange = now
		slot.UpdatedAt = now
	})
}

func (r *SlotStore) Release(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error) {
	match := func(slot models.Slot) bool {
		return slot.Status == models.SlotLocked && slot.LockedBy == requesterID
	}
	return r.update(ctx, slotID, "failed to release slot", match, func(slot *models.Slot) {
		makeAvailable(slot, now)
	})
}

func (r *SlotStore) ReleaseExpired(ctx context.Context, providerID string, now time.Time) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, slot := range r.s.slots {
		if slot.Status != models.SlotLocked || !lockLapsed(slot, now) {
			continue
		}
		if providerID != "" && slot.ProviderID != providerID {
			continue
		}
		makeAvailable(&slot, now)
		r.s.slots[id] = slot
		n++
	}
	return n, nil
}

func (r *SlotStore) Commit(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error) {
	match := func(slot models.Slot) bool {
		return slot.IsActive &&
			slot.Status == models.SlotLocked &&
			slot.LockedBy == requesterID &&
			!lockLapsed(slot, now)
	}
	return r.update(ctx, slotID, "failed to commit slot", match, func(slot *models.Slot) {
		slot.Status = models.SlotBooked
		slot.LockedBy = ""
		slot.LockExpiry = nil
		slot.LastStatusChange = now
		slot.UpdatedAt = now
	})
}

func (r *SlotStore) LinkAppointment(ctx context.Context, slotID, appointmentID string, now time.Time) (*models.Slot, error) {
	match := func(slot models.Slot) bool { return slot.Status == models.SlotBooked }
	return r.update(ctx, slotID, "failed to link appointment", match, func(slot *models.Slot) {
		slot.AppointmentID = appointmentID
		slot.UpdatedAt = now
	})
}

func (r *SlotStore) Unbook(ctx context.Context, slotID, appointmentID string, reopen bool, now time.Time) (*models.Slot, error) {
	match := func(slot models.Slot) bool {
		return slot.Status == models.SlotBooked && slot.AppointmentID == appointmentID
	}
	return r.update(ctx, slotID, "failed to unbook slot", match, func(slot *models.Slot) {
		slot.AppointmentID = ""
		slot.Status, slot.IsActive = models.SlotAvailable, true
		if !reopen {
			slot.Status, slot.IsActive = models.SlotUnavailable, false
		}
		slot.LastStatusChange = now
		slot.UpdatedAt = now
	})
}

func (r *SlotStore) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, slot := range r.s.slots {
		if slot.Status != models.SlotAvailable || slot.StartDateTime.After(now) {
			continue
		}
		slot.Status = models.SlotExpired
		slot.IsActive = false
		slot.LastStatusChange = now
		slot.UpdatedAt = now
		r.s.slots[id] = slot
		n++
	}
	return n, nil
}

func (r *SlotStore) DeleteRegenerable(ctx context.Context, providerID string, from, to time.Time) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, slot := range r.s.slots {
		if slot.ProviderID == providerID && slot.Status != models.SlotBooked && inRange(slot.StartDateTime, from, to) {
			delete(r.s.slots, id)
			n++
		}
	}
	return n, nil
}

// InsertMany is all-or-nothing: a duplicate id or (provider, start) pair
// rejects the whole batch.
func (r *SlotStore) InsertMany(ctx context.Context, slots []models.Slot) (int, error) {
	defer r.s.lock(ctx)()

	type key struct {
		provider string
		start    int64
	}
	taken := map[key]bool{}
	for _, slot := range r.s.slots {
		taken[key{slot.ProviderID, slot.StartDateTime.UnixNano()}] = true
	}

	batch := make([]models.Slot, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		k := key{slot.ProviderID, slot.StartDateTime.UnixNano()}
		if _, exists := r.s.slots[slot.ID]; exists || taken[k] {
			return 0, fmt.Errorf("failed to insert slots: %w", repository.ErrDuplicate)
		}
		taken[k] = true
		batch[i] = slot
	}
	for _, slot := range batch {
		r.s.slots[slot.ID] = slot
	}
	return len(batch), nil
}
