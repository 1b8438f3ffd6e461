package booking

import (
	"context"
	"time"

	"slotbook/database"
	appointmentRepo "slotbook/database/repository/appointment"
	availabilityRepo "slotbook/database/repository/availability"
	consumerRepo "slotbook/database/repository/consumer"
	paymentRepo "slotbook/database/repository/payment"
	providerRepo "slotbook/database/repository/provider"
	timeslotRepo "slotbook/database/repository/timeslot"
	"slotbook/models"
	"slotbook/utils"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("slotbook/services/booking")

// BookingService drives the hold/confirm protocol and the appointment
// lifecycle that follows it.
type BookingService interface {
	Hold(ctx context.Context, userID string, req models.HoldRequest) (*models.HoldResponse, error)
	Release(ctx context.Context, userID, slotID string) (*models.Slot, error)
	Confirm(ctx context.Context, userID string, req models.ConfirmRequest) (*models.BookingResult, error)
	ReleaseExpired(ctx context.Context, providerID string) (int64, error)
	ExpirePast(ctx context.Context) (int64, error)

	AvailableSlots(ctx context.Context, providerID string, from time.Time) (*models.ProviderSlots, error)
	AvailableProviders(ctx context.Context) ([]models.AvailableProvider, error)

	ListMine(ctx context.Context, userID string) ([]models.Appointment, error)
	ListProviderDay(ctx context.Context, userID, date string) ([]models.Appointment, error)
	Cancel(ctx context.Context, caller utils.Identity, appointmentID, reason string) (*models.Appointment, error)
	MarkAttended(ctx context.Context, caller utils.Identity, appointmentID string) (*models.Appointment, error)
	MarkNoShow(ctx context.Context, caller utils.Identity, appointmentID string) (*models.Appointment, error)
}

// EventPublisher emits appointment domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.AppointmentEvent) error
}

// ReleaseScheduler arranges for a hold to be reclaimed at its expiry.
type ReleaseScheduler interface {
	ScheduleRelease(ctx context.Context, payload models.ReleasePayload) error
}

// HoldPolicy bounds hold durations.
type HoldPolicy struct {
	DefaultMinutes int
	AllowedMinutes []int
}

// Minutes returns requested when it is allowed and the default otherwise.
func (p HoldPolicy) Minutes(requested int) int {
	for _, m := range p.AllowedMinutes {
		if m == requested {
			return requested
		}
	}
	if p.DefaultMinutes > 0 {
		return p.DefaultMinutes
	}
	return 10
}

// Coordinator implements BookingService. It holds no locks of its own:
// every transition is a conditional store update or a transaction.
type Coordinator struct {
	Slots        timeslotRepo.TimeSlotRepository
	Availability availabilityRepo.AvailabilityRepository
	Appointments appointmentRepo.AppointmentRepository
	Payments     paymentRepo.PaymentRepository
	Providers    providerRepo.ProviderRepository
	Consumers    consumerRepo.ConsumerRepository
	Transactor   database.Transactor

	Policy    HoldPolicy
	Clock     utils.Clock
	Events    EventPublisher
	Scheduler ReleaseScheduler
	Logger    *zap.Logger
}
