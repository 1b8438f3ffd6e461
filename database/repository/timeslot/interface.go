// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository is the slot store. Every state transition is a single
// conditional update: when the precondition does not hold nothing is
// written and repository.ErrNoMatch is returned.
type TimeSlotRepository interface {
	EnsureIndexes(ctx context.Context) error

	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByProviderAndRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error)
	FindAvailable(ctx context.Context, providerID string, from time.Time) ([]models.Slot, error)
	SummarizeAvailable(ctx context.Context, from time.Time) ([]models.ProviderSlotSummary, error)

	Hold(ctx context.Context, slotID, requesterID string, now, expiry time.Time) (*models.Slot, error)
	Release(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error)
	ReleaseExpired(ctx context.Context, providerID string, now time.Time) (int64, error)
	Commit(ctx context.Context, slotID, requesterID string, now time.Time) (*models.Slot, error)
	LinkAppointment(ctx context.Context, slotID, appointmentID string, now time.Time) (*models.Slot, error)
	Unbook(ctx context.Context, slotID, appointmentID string, reopen bool, now time.Time) (*models.Slot, error)
	ExpirePast(ctx context.Context, now time.Time) (int64, error)

	DeleteRegenerable(ctx context.Context, providerID string, from, to time.Time) (int64, error)
	FindCommitted(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error)
	InsertMany(ctx context.Context, slots []models.Slot) (int, error)
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("slots"),
	}
}
