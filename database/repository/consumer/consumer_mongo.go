package consumerRepo

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

// MongoConsumerRepo implements ConsumerRepository using MongoDB.
type MongoConsumerRepo struct {
	coll *mongo.Collection
}

func NewMongoConsumerRepo(db *mongo.Database) ConsumerRepository {
	return &MongoConsumerRepo{coll: db.Collection("consumers")}
}

func (r *MongoConsumerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer indexes: %w", err)
	}
	return nil
}

func (r *MongoConsumerRepo) Create(ctx context.Context, consumer *models.Consumer) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, consumer)
	return repository.Translate(err, "failed to create consumer")
}

func (r *MongoConsumerRepo) findOne(ctx context.Context, filter bson.M) (*models.Consumer, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var consumer models.Consumer
	if err := r.coll.FindOne(ctx, filter).Decode(&consumer); err != nil {
		return nil, repository.Translate(err, "failed to get consumer")
	}
	return &consumer, nil
}

func (r *MongoConsumerRepo) GetByID(ctx context.Context, id string) (*models.Consumer, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoConsumerRepo) GetByUserID(ctx context.Context, userID string) (*models.Consumer, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}
