package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// transition applies update to the single slot matching filter and returns
// the post-image. A filter miss yields repository.ErrNoMatch.
func (r *mongoTimeSlotRepo) transition(ctx context.Context, filter, update bson.M, op string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNoMatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &slot, nil
}

// lapsedLock matches a lock whose expiry has passed or was never set. A null
// lockExpiry matches both an explicit null and a missing field.
func lapsedLock(now time.Time) bson.A {
	return bson.A{
		bson.M{"lockExpiry": bson.M{"$lte": now}},
		bson.M{"lockExpiry": nil},
	}
}

func holdFilter(slotID, requesterID string, now time.Time) bson.M {
	lapsed := lapsedLock(now)
	return bson.M{
		"id":            slotID,
		"isActive":      true,
		"startDateTime": bson.M{"$gt": now},
		"$or": bson.A{
			bson.M{"status": models.SlotAvailable},
			bson.M{"status": models.SlotLocked, "$or": lapsed},
			bson.M{"status": models.SlotLocked, "lockedBy": requesterID, "lockExpiry": bson.M{"$gt": now}},
		},
	}
}

func commitFilter(slotID, requesterID string, now time.Time) bson.M {
	return bson.M{
		"id":         slotID,
		"isActive":   true,
		"status":     models.SlotLocked,
		"lockedBy":   requesterID,
		"lockExpiry": bson.M{"$gt": now},
	}
}

// expiredFilter selects lapsed holds, across all providers when providerID
// is empty.
func expiredFilter(providerID string, now time.Time) bson.M {
	filter := bson.M{
		"status": models.SlotLocked,
		"$or":    lapsedLock(now),
	}
	if providerID != "" {
		filter["providerId"] = providerID
	}
	return filter
}

// Hold locks the slot for requesterID until expiry. The slot must be active,
// start after now, and be available, locked with a lapsed hold, or already
// held by requesterID (which extends the hold).
func (r *mongoTimeSlotRepo) Hold(ctx context.Context, slotID, requesterID string, now, expiry time.Time) (*models.Slot, error) {
	filter := holdFilter(slotID, requesterID, now)
	update := bson.M{"$set": bson.M{
		"status":           models.SlotLocked,
		"lockedBy":         requesterID,
		"lockExpiry":       expiry,
		"lastStatusChange": now,
		"updatedAt":        now,
	}}
	return r.transition(ctx, filter, update, "failed to hold slot")
}

// Release returns a slot held by requesterID to available.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error) {
	filter := bson.M{
		"id":       slotID,
		"status":   models.SlotLocked,
		"lockedBy": requesterID,
	}
	return r.transition(ctx, filter, availableUpdate(now), "failed to release slot")
}

// ReleaseExpired returns every lapsed hold to available. An empty providerID
// sweeps all providers.
func (r *mongoTimeSlotRepo) ReleaseExpired(ctx context.Context, providerID string, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx, expiredFilter(providerID, now), availableUpdate(now))
	if err != nil {
		return 0, fmt.Errorf("failed to release expired holds: %w", err)
	}
	return res.ModifiedCount, nil
}

// Commit turns requesterID's unexpired hold into a booking.
func (r *mongoTimeSlotRepo) Commit(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error) {
	filter := commitFilter(slotID, requesterID, now)
	update := bson.M{
		"$set": bson.M{
			"status":           models.SlotBooked,
			"lastStatusChange": now,
			"updatedAt":        now,
		},
		"$unset": bson.M{"lockedBy": "", "lockExpiry": ""},
	}
	return r.transition(ctx, filter, update, "failed to commit slot")
}

func (r *mongoTimeSlotRepo) LinkAppointment(ctx context.Context, slotID, appointmentID string, now time.Time) (*models.Slot, error) {
	filter := bson.M{"id": slotID, "status": models.SlotBooked}
	update := bson.M{"$set": bson.M{
		"appointmentId": appointmentID,
		"updatedAt":     now,
	}}
	return r.transition(ctx, filter, update, "failed to link appointment")
}

// Unbook detaches appointmentID from its slot. With reopen the slot becomes
// available again; otherwise it is marked unavailable and deactivated.
func (r *mongoTimeSlotRepo) Unbook(ctx context.Context, slotID, appointmentID string, reopen bool, now time.Time) (*models.Slot, error) {
	filter := bson.M{
		"id":            slotID,
		"status":        models.SlotBooked,
		"appointmentId": appointmentID,
	}
	status, active := models.SlotAvailable, true
	if !reopen {
		status, active = models.SlotUnavailable, false
	}
	update := bson.M{
		"$set": bson.M{
			"status":           status,
			"isActive":         active,
			"lastStatusChange": now,
			"updatedAt":        now,
		},
		"$unset": bson.M{"appointmentId": ""},
	}
	return r.transition(ctx, filter, update, "failed to unbook slot")
}

// ExpirePast retires available slots whose start has passed.
func (r *mongoTimeSlotRepo) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{
		"status":        models.SlotAvailable,
		"startDateTime": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{
		"status":           models.SlotExpired,
		"isActive":         false,
		"lastStatusChange": now,
		"updatedAt":        now,
	}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire past slots: %w", err)
	}
	return res.ModifiedCount, nil
}

func availableUpdate(now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"status":           models.SlotAvailable,
			"lastStatusChange": now,
			"updatedAt":        now,
		},
		"$unset": bson.M{"lockedBy": "", "lockExpiry": ""},
	}
}
