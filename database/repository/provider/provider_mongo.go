package providerRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo(db *mongo.Database) ProviderRepository {
	return &MongoProviderRepo{coll: db.Collection("providers")}
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, provider)
	return repository.Translate(err, "failed to create provider")
}

func (r *MongoProviderRepo) findOne(ctx context.Context, filter bson.M) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		return nil, repository.Translate(err, "failed to get provider")
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoProviderRepo) GetApprovedByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	if len(ids) == 0 {
		return []models.Provider{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}, "approved": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get approved providers: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) SetApproval(ctx context.Context, id string, approved bool, now time.Time) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"approved": approved, "updatedAt": now}}
	if approved {
		update["$set"].(bson.M)["approvedAt"] = now
	} else {
		update["$unset"] = bson.M{"approvedAt": ""}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var provider models.Provider
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&provider); err != nil {
		return nil, repository.Translate(err, "failed to set provider approval")
	}
	return &provider, nil
}
