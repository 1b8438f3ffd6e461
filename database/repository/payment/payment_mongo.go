package paymentRepo

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

type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(db *mongo.Database) PaymentRepository {
	return &MongoPaymentRepo{coll: db.Collection("payments")}
}

func (r *MongoPaymentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "gatewayOrderId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, p)
	return repository.Translate(err, "failed to create payment")
}

func (r *MongoPaymentRepo) GetByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&p); err != nil {
		return nil, repository.Translate(err, "failed to get payment")
	}
	return &p, nil
}
