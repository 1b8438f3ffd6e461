package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// SummarizeAvailable groups active available future slots by provider.
func (r *mongoTimeSlotRepo) SummarizeAvailable(ctx context.Context, from time.Time) ([]models.ProviderSlotSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"status":        models.SlotAvailable,
			"isActive":      true,
			"startDateTime": bson.M{"$gte": from},
		}},
		bson.M{"$group": bson.M{
			"_id":                 "$providerId",
			"availableSlotsCount": bson.M{"$sum": 1},
			"nextAvailableSlot":   bson.M{"$min": "$startDateTime"},
		}},
		bson.M{"$sort": bson.M{"nextAvailableSlot": 1}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize available slots: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.ProviderSlotSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode slot summaries: %w", err)
	}
	return summaries, nil
}
