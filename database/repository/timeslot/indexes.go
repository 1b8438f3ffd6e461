// FILE: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoTimeSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One slot per provider per start instant.
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "startDateTime", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("provider_start_unique"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}, {Key: "startDateTime", Value: 1}},
			Options: options.Index().SetName("provider_status_start_idx"),
		},
		// Reclaimer sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "lockExpiry", Value: 1}},
			Options: options.Index().SetName("status_lock_expiry_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
