package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Only live appointments block the provider's start instant.
	activeOnly := options.Index().
		SetUnique(true).
		SetName("active_provider_start_unique").
		SetPartialFilterExpression(bson.M{"isActive": true})

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "startDateTime", Value: 1}}, Options: activeOnly},
		{Keys: bson.D{{Key: "consumerId", Value: 1}, {Key: "startDateTime", Value: -1}}},
		{Keys: bson.D{{Key: "slotId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, appt)
	return repository.Translate(err, "failed to create appointment")
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, repository.Translate(err, "failed to get appointment")
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M, sort int) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDateTime", Value: sort}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListByConsumer(ctx context.Context, consumerID string) ([]models.Appointment, error) {
	appts, err := r.list(ctx, bson.M{"consumerId": consumerID}, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumer appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"providerId":    providerID,
		"startDateTime": bson.M{"$gte": from, "$lt": to},
	}
	appts, err := r.list(ctx, filter, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, u StatusUpdate) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": u.From}}
	set := bson.M{
		"status":    u.To,
		"updatedAt": u.At,
	}
	switch u.To {
	case models.AppointmentCancelled:
		set["cancelledAt"] = u.At
		set["cancelledBy"] = u.By
		if u.Reason != "" {
			set["cancellationReason"] = u.Reason
		}
	case models.AppointmentAttended:
		set["attendedAt"] = u.At
	}
	if u.Deactivate {
		set["isActive"] = false
	}
	update := bson.M{
		"$set": set,
		"$push": bson.M{"statusHistory": models.StatusChange{
			Status:    u.To,
			ChangedAt: u.At,
			ChangedBy: u.By,
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update appointment status: %w", repository.ErrNoMatch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return &appt, nil
}
