package appointmentRepo

import (
	"context"
	"time"

	"slotbook/models"
)

// StatusUpdate describes one audited appointment status transition.
type StatusUpdate struct {
	From   []models.AppointmentStatus
	To     models.AppointmentStatus
	By     string
	At     time.Time
	Reason string
	// Deactivate clears IsActive, freeing the (provider, start) pair.
	Deactivate bool
}

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Create returns repository.ErrDuplicate when an active appointment
	// already occupies the provider's start instant.
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]models.Appointment, error)
	ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error)
	// UpdateStatus applies u when the current status is one of u.From and
	// appends the change to the status history. Returns repository.ErrNoMatch
	// otherwise.
	UpdateStatus(ctx context.Context, id string, u StatusUpdate) (*models.Appointment, error)
}
