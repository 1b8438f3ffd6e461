package booking

import (
	"context"
	"errors"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
	"slotbook/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Hold reserves a slot for the calling consumer for a short, bounded time.
func (c *Coordinator) Hold(ctx context.Context, userID string, req models.HoldRequest) (resp *models.HoldResponse, err error) {
	ctx, span := tracer.Start(ctx, "booking.Hold")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(utils.KindOf(err)))
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("slot.id", req.SlotID))

	if req.SlotID == "" {
		return nil, utils.NewValidationError("A valid slotId is required")
	}
	cons, err := c.bookingConsumer(ctx, userID)
	if err != nil {
		return nil, err
	}
	minutes := c.Policy.Minutes(int(req.HoldMinutes))

	// Step 1: locate the slot and reclaim its provider's lapsed holds
	slot, err := c.Slots.GetByID(ctx, req.SlotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Slot not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load slot", err)
	}
	now := c.Clock.Now()
	if _, err := c.Slots.ReleaseExpired(ctx, slot.ProviderID, now); err != nil {
		return nil, utils.NewInternalError("Failed to reclaim expired holds", err)
	}

	// Step 2: conditional hold
	expiry := now.Add(time.Duration(minutes) * time.Minute)
	held, err := c.Slots.Hold(ctx, slot.ID, cons.ID, now, expiry)
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, errSlotUnavailable
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to hold slot", err)
	}

	// Step 3: only approved providers take bookings
	prov, err := c.approvedProvider(ctx, held.ProviderID)
	if err != nil {
		// lock stays; it lapses at expiry and the sweep reclaims it
		return nil, utils.NewInternalError("Failed to load provider", err)
	}
	if prov == nil {
		if _, relErr := c.Slots.Release(ctx, held.ID, cons.ID, now); relErr != nil {
			c.Logger.Error("Failed to release hold on unbookable provider",
				zap.String("slotID", held.ID), zap.Error(relErr))
		}
		return nil, errProviderClosed
	}

	// Step 4: reclaim at expiry even if nobody reads this provider again
	if c.Scheduler != nil {
		payload := models.ReleasePayload{SlotID: held.ID, ProviderID: held.ProviderID, LockExpiry: expiry}
		if err := c.Scheduler.ScheduleRelease(ctx, payload); err != nil {
			c.Logger.Warn("Failed to schedule hold release", zap.String("slotID", held.ID), zap.Error(err))
		}
	}

	c.Logger.Info("Slot held",
		zap.String("slotID", held.ID),
		zap.String("providerID", held.ProviderID),
		zap.Int("holdMinutes", minutes))

	return &models.HoldResponse{
		SlotID:        held.ID,
		Provider:      prov.Summary(),
		StartDateTime: held.StartDateTime,
		EndDateTime:   held.EndDateTime,
		Status:        held.Status,
		LockExpiry:    expiry,
		HoldMinutes:   minutes,
	}, nil
}

// Release gives up the caller's hold before it expires.
func (c *Coordinator) Release(ctx context.Context, userID, slotID string) (*models.Slot, error) {
	cons, err := c.consumer(ctx, userID)
	if err != nil {
		return nil, err
	}
	slot, err := c.Slots.Release(ctx, slotID, cons.ID, c.Clock.Now())
	if errors.Is(err, repository.ErrNoMatch) {
		if _, getErr := c.Slots.GetByID(ctx, slotID); errors.Is(getErr, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Slot not found")
		}
		return nil, utils.NewConflictError("Slot is not held by you")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to release slot", err)
	}
	return slot, nil
}

// ReleaseExpired reclaims lapsed holds of one provider, or of all
// providers when providerID is empty.
func (c *Coordinator) ReleaseExpired(ctx context.Context, providerID string) (int64, error) {
	n, err := c.Slots.ReleaseExpired(ctx, providerID, c.Clock.Now())
	if err != nil {
		return 0, utils.NewInternalError("Failed to reclaim expired holds", err)
	}
	if n > 0 {
		c.Logger.Info("Reclaimed expired holds", zap.String("providerID", providerID), zap.Int64("count", n))
	}
	return n, nil
}

// ExpirePast retires open slots whose start has already passed.
func (c *Coordinator) ExpirePast(ctx context.Context) (int64, error) {
	n, err := c.Slots.ExpirePast(ctx, c.Clock.Now())
	if err != nil {
		return 0, utils.NewInternalError("Failed to expire past slots", err)
	}
	return n, nil
}
