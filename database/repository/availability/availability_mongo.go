package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &MongoAvailabilityRepo{coll: db.Collection("availabilities")}
}

func (r *MongoAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("provider_date_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

func (r *MongoAvailabilityRepo) Upsert(ctx context.Context, a *models.Availability) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{"providerId": a.ProviderID, "date": a.Date}
	update := bson.M{
		"$set": bson.M{
			"isAvailable": a.IsAvailable,
			"startTime":   a.StartTime,
			"endTime":     a.EndTime,
			"breaks":      a.Breaks,
			"updatedAt":   a.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"createdAt": a.UpdatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Availability
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, repository.Translate(err, "failed to upsert availability")
	}
	return &saved, nil
}

func (r *MongoAvailabilityRepo) GetByProviderAndDate(ctx context.Context, providerID string, date time.Time) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var a models.Availability
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID, "date": date}).Decode(&a)
	if err != nil {
		return nil, repository.Translate(err, "failed to get availability")
	}
	return &a, nil
}
