// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTimeSlotRepo) InsertMany(ctx context.Context, slots []models.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		docs[i] = slot
	}

	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, repository.Translate(err, "failed to insert slots")
	}
	return len(res.InsertedIDs), nil
}

// DeleteRegenerable removes every slot in [from, to) that is not booked.
func (r *mongoTimeSlotRepo) DeleteRegenerable(ctx context.Context, providerID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{
		"providerId":    providerID,
		"startDateTime": bson.M{"$gte": from, "$lt": to},
		"status":        bson.M{"$ne": models.SlotBooked},
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete regenerable slots: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoTimeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot); err != nil {
		return nil, repository.Translate(err, "failed to get slot")
	}
	return &slot, nil
}
