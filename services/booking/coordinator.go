package booking

import (
	"context"
	"errors"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

var (
	errSlotUnavailable = utils.NewConflictError("Slot is not available for booking")
	errLockLost        = utils.NewConflictError("Slot lock expired, is not held by you, or the booking was already processed")
	errProviderClosed  = utils.NewConflictError("Provider is not accepting bookings")
	errAlreadyBooked   = utils.NewConflictError("An appointment already exists for this slot")
)

// consumer resolves the booking profile of userID.
func (c *Coordinator) consumer(ctx context.Context, userID string) (*models.Consumer, error) {
	cons, err := c.Consumers.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Consumer profile not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load consumer profile", err)
	}
	return cons, nil
}

func (c *Coordinator) bookingConsumer(ctx context.Context, userID string) (*models.Consumer, error) {
	cons, err := c.consumer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cons.ProfileComplete() {
		return nil, utils.NewValidationError("Complete your profile (name and phone) before booking")
	}
	return cons, nil
}

func (c *Coordinator) approvedProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	prov, err := c.Providers.GetByID(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !prov.Approved {
		return nil, nil
	}
	return prov, nil
}

// internal wraps unclassified failures; classified errors pass through.
func internal(msg string, err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.NewInternalError(msg, err)
}

func (c *Coordinator) publish(ctx context.Context, evtType string, appt *models.Appointment) {
	if c.Events == nil {
		return
	}
	evt := models.AppointmentEvent{
		Type:          evtType,
		AppointmentID: appt.ID,
		ProviderID:    appt.ProviderID,
		ConsumerID:    appt.ConsumerID,
		SlotID:        appt.SlotID,
		Status:        appt.Status,
		StartDateTime: appt.StartDateTime,
		OccurredAt:    c.Clock.Now(),
	}
	if err := c.Events.Publish(ctx, evt); err != nil {
		c.Logger.Warn("Failed to publish appointment event",
			zap.String("type", evtType),
			zap.String("appointmentID", appt.ID),
			zap.Error(err))
	}
}
