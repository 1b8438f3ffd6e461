package booking

import (
	"context"
	"errors"
	"time"

	"slotbook/database/repository"
	appointmentRepo "slotbook/database/repository/appointment"
	"slotbook/models"
	"slotbook/services/timeofday"
	"slotbook/utils"

	"go.uber.org/zap"
)

var cancellable = []models.AppointmentStatus{
	models.AppointmentPending,
	models.AppointmentConfirmed,
	models.AppointmentRescheduleRequired,
}

func (c *Coordinator) ListMine(ctx context.Context, userID string) ([]models.Appointment, error) {
	cons, err := c.consumer(ctx, userID)
	if err != nil {
		return nil, err
	}
	appts, err := c.Appointments.ListByConsumer(ctx, cons.ID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load appointments", err)
	}
	return appts, nil
}

// ListProviderDay returns the calling provider's appointments on date.
func (c *Coordinator) ListProviderDay(ctx context.Context, userID, date string) ([]models.Appointment, error) {
	prov, err := c.providerOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, utils.NewValidationError("Date must be formatted as YYYY-MM-DD")
	}
	appts, err := c.Appointments.ListByProvider(ctx, prov.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to load appointments", err)
	}
	return appts, nil
}

func (c *Coordinator) providerOf(ctx context.Context, userID string) (*models.Provider, error) {
	prov, err := c.Providers.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Provider profile not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load provider profile", err)
	}
	return prov, nil
}

// authorize loads the appointment and checks that caller is a party to it.
// Admins may act on any appointment; consumers only when allowConsumer.
func (c *Coordinator) authorize(ctx context.Context, caller utils.Identity, appointmentID string, allowConsumer bool) (*models.Appointment, string, error) {
	appt, err := c.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", utils.NewNotFoundError("Appointment not found")
	}
	if err != nil {
		return nil, "", utils.NewInternalError("Failed to load appointment", err)
	}

	switch caller.Role {
	case utils.RoleAdmin:
		return appt, models.ActorAdmin, nil
	case utils.RoleProvider:
		prov, err := c.providerOf(ctx, caller.UserID)
		if err != nil {
			return nil, "", err
		}
		if prov.ID == appt.ProviderID {
			return appt, models.ActorProvider, nil
		}
	case utils.RoleConsumer:
		if !allowConsumer {
			break
		}
		cons, err := c.consumer(ctx, caller.UserID)
		if err != nil {
			return nil, "", err
		}
		if cons.ID == appt.ConsumerID {
			return appt, models.ActorConsumer, nil
		}
	}
	return nil, "", utils.NewAuthorizationError("You are not allowed to change this appointment")
}

// Cancel cancels a future appointment and frees its slot in the same
// transaction. The slot reopens only while it still fits the provider's
// current declaration for that day.
func (c *Coordinator) Cancel(ctx context.Context, caller utils.Identity, appointmentID, reason string) (*models.Appointment, error) {
	appt, actor, err := c.authorize(ctx, caller, appointmentID, true)
	if err != nil {
		return nil, err
	}
	now := c.Clock.Now()
	if !appt.StartDateTime.After(now) {
		return nil, utils.NewConflictError("Appointment has already started")
	}

	var cancelled *models.Appointment
	err = c.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		updated, err := c.Appointments.UpdateStatus(ctx, appt.ID, appointmentRepo.StatusUpdate{
			From:       cancellable,
			To:         models.AppointmentCancelled,
			By:         actor,
			At:         now,
			Reason:     reason,
			Deactivate: true,
		})
		if errors.Is(err, repository.ErrNoMatch) {
			return utils.NewConflictError("Appointment can no longer be cancelled")
		}
		if err != nil {
			return err
		}

		reopen, err := c.stillDeclared(ctx, appt)
		if err != nil {
			return err
		}
		if _, err := c.Slots.Unbook(ctx, appt.SlotID, appt.ID, reopen, now); err != nil {
			if !errors.Is(err, repository.ErrNoMatch) {
				return err
			}
			c.Logger.Warn("Cancelled appointment had no linked slot",
				zap.String("appointmentID", appt.ID), zap.String("slotID", appt.SlotID))
		}
		cancelled = updated
		return nil
	})
	if err != nil {
		return nil, internal("Failed to cancel appointment", err)
	}

	c.publish(ctx, models.EventAppointmentCancelled, cancelled)
	return cancelled, nil
}

// stillDeclared reports whether the appointment's interval lies inside the
// provider's current working window for that day and clear of its breaks.
func (c *Coordinator) stillDeclared(ctx context.Context, appt *models.Appointment) (bool, error) {
	start := appt.StartDateTime
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	decl, err := c.Availability.GetByProviderAndDate(ctx, appt.ProviderID, day)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !decl.IsAvailable {
		return false, nil
	}

	from := int(start.Sub(day) / time.Minute)
	to := int(appt.EndDateTime.Sub(day) / time.Minute)
	ws, err1 := timeofday.ToMinutes(decl.StartTime)
	we, err2 := timeofday.ToMinutes(decl.EndTime)
	if err1 != nil || err2 != nil || from < ws || to > we {
		return false, nil
	}
	for _, br := range decl.Breaks {
		bs, err1 := timeofday.ToMinutes(br.StartTime)
		be, err2 := timeofday.ToMinutes(br.EndTime)
		if err1 != nil || err2 != nil {
			return false, nil
		}
		if from < be && to > bs {
			return false, nil
		}
	}
	return true, nil
}

// MarkAttended records that a started appointment took place.
func (c *Coordinator) MarkAttended(ctx context.Context, caller utils.Identity, appointmentID string) (*models.Appointment, error) {
	return c.closeOut(ctx, caller, appointmentID, models.AppointmentAttended)
}

// MarkNoShow records that the consumer did not turn up.
func (c *Coordinator) MarkNoShow(ctx context.Context, caller utils.Identity, appointmentID string) (*models.Appointment, error) {
	return c.closeOut(ctx, caller, appointmentID, models.AppointmentNoShow)
}

func (c *Coordinator) closeOut(ctx context.Context, caller utils.Identity, appointmentID string, to models.AppointmentStatus) (*models.Appointment, error) {
	appt, actor, err := c.authorize(ctx, caller, appointmentID, false)
	if err != nil {
		return nil, err
	}
	now := c.Clock.Now()
	if appt.StartDateTime.After(now) {
		return nil, utils.NewConflictError("Appointment has not started yet")
	}

	updated, err := c.Appointments.UpdateStatus(ctx, appt.ID, appointmentRepo.StatusUpdate{
		From: []models.AppointmentStatus{models.AppointmentConfirmed},
		To:   to,
		By:   actor,
		At:   now,
	})
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, utils.NewConflictError("Only confirmed appointments can be closed out")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to update appointment", err)
	}
	return updated, nil
}
