package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTimeSlotRepo) find(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDateTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) GetByProviderAndRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error) {
	slots, err := r.find(ctx, bson.M{
		"providerId":    providerID,
		"startDateTime": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get slots for provider %s: %w", providerID, err)
	}
	return slots, nil
}

// FindAvailable returns the provider's active available slots starting at
// or after from, ordered by start.
func (r *mongoTimeSlotRepo) FindAvailable(ctx context.Context, providerID string, from time.Time) ([]models.Slot, error) {
	slots, err := r.find(ctx, bson.M{
		"providerId":    providerID,
		"status":        models.SlotAvailable,
		"isActive":      true,
		"startDateTime": bson.M{"$gte": from},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get available slots: %w", err)
	}
	return slots, nil
}

// FindCommitted returns the booked slots in [from, to).
func (r *mongoTimeSlotRepo) FindCommitted(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error) {
	slots, err := r.find(ctx, bson.M{
		"providerId":    providerID,
		"status":        models.SlotBooked,
		"startDateTime": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}
	return slots, nil
}
