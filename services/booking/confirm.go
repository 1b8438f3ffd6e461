package booking

import (
	"context"
	"errors"
	"math"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

func validateConfirm(req models.ConfirmRequest) error {
	if req.SlotID == "" {
		return utils.NewValidationError("A valid slotId is required")
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return utils.NewValidationError("A valid payment amount is required")
	}
	if req.TokenAmount < 0 || req.TokenAmount > req.Amount {
		return utils.NewValidationError("Token amount must be between zero and the payment amount")
	}
	if req.GatewayOrderID == "" {
		return utils.NewValidationError("gatewayOrderId is required")
	}
	if req.PaymentMethod != "" && !models.PaymentMethods[req.PaymentMethod] {
		return utils.NewValidationError("Unsupported payment method")
	}
	return nil
}

// Confirm turns the caller's live hold into a paid appointment. The slot
// commit, appointment, payment and slot link are written in one
// transaction; any failure leaves no trace.
func (c *Coordinator) Confirm(ctx context.Context, userID string, req models.ConfirmRequest) (result *models.BookingResult, err error) {
	ctx, span := tracer.Start(ctx, "booking.Confirm")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(utils.KindOf(err)))
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("slot.id", req.SlotID))

	if err := validateConfirm(req); err != nil {
		return nil, err
	}
	cons, err := c.bookingConsumer(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := c.Clock.Now()

	err = c.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		// Step 1: commit the hold
		slot, err := c.Slots.Commit(ctx, req.SlotID, cons.ID, now)
		if errors.Is(err, repository.ErrNoMatch) {
			return errLockLost
		}
		if err != nil {
			return err
		}

		// Step 2: provider may have been de-approved since the hold
		prov, err := c.approvedProvider(ctx, slot.ProviderID)
		if err != nil {
			return err
		}
		if prov == nil {
			return errProviderClosed
		}

		// Step 3: appointment
		serviceName := req.ServiceName
		if serviceName == "" {
			serviceName = models.DefaultServiceName
		}
		appt := &models.Appointment{
			ID:         uuid.New().String(),
			ConsumerID: cons.ID,
			ProviderID: prov.ID,
			SlotID:     slot.ID,
			Service: models.ServiceInfo{
				Name:     serviceName,
				Duration: slot.DurationMinutes(),
				Fee:      req.Amount,
			},
			StartDateTime: slot.StartDateTime,
			EndDateTime:   slot.EndDateTime,
			Status:        models.AppointmentConfirmed,
			PaymentStatus: models.AppointmentPaymentPaid,
			StatusHistory: []models.StatusChange{{
				Status:    models.AppointmentConfirmed,
				ChangedAt: now,
				ChangedBy: models.ActorConsumer,
			}},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := c.Appointments.Create(ctx, appt); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errAlreadyBooked
			}
			return err
		}

		// Step 4: payment, gateway identifiers stored as given
		paidAt := now
		payment := &models.Payment{
			ID:               uuid.New().String(),
			AppointmentID:    appt.ID,
			ConsumerID:       cons.ID,
			ProviderID:       prov.ID,
			Amount:           req.Amount,
			GatewayOrderID:   req.GatewayOrderID,
			GatewayPaymentID: req.GatewayPaymentID,
			GatewaySignature: req.GatewaySignature,
			Status:           models.PaymentCompleted,
			Method:           req.PaymentMethod,
			PaidAt:           &paidAt,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if req.TokenAmount > 0 {
			payment.TokenAmount = req.TokenAmount
		}
		if err := c.Payments.Create(ctx, payment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errAlreadyBooked
			}
			return err
		}

		// Step 5: link
		linked, err := c.Slots.LinkAppointment(ctx, slot.ID, appt.ID, now)
		if err != nil {
			return err
		}

		result = &models.BookingResult{Appointment: appt, Payment: payment, Slot: linked}
		return nil
	})
	if err != nil {
		c.Logger.Warn("Confirm rolled back", zap.String("slotID", req.SlotID), zap.Error(err))
		return nil, internal("Booking failed, please try again", err)
	}

	c.Logger.Info("Appointment booked",
		zap.String("appointmentID", result.Appointment.ID),
		zap.String("slotID", result.Slot.ID),
		zap.String("providerID", result.Appointment.ProviderID))
	c.publish(ctx, models.EventAppointmentBooked, result.Appointment)
	return result, nil
}
