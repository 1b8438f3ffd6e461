package availability

import (
	"context"
	"errors"
	"time"

	"slotbook/database"
	"slotbook/database/repository"
	availabilityRepo "slotbook/database/repository/availability"
	providerRepo "slotbook/database/repository/provider"
	timeslotRepo "slotbook/database/repository/timeslot"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// AvailabilityService manages provider day declarations and their slots.
type AvailabilityService interface {
	SetAvailability(ctx context.Context, userID string, req models.AvailabilityRequest) (*models.DaySchedule, error)
	GetDay(ctx context.Context, userID, date string) (*models.DaySchedule, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo       availabilityRepo.AvailabilityRepository
	Slots      timeslotRepo.TimeSlotRepository
	Providers  providerRepo.ProviderRepository
	Transactor database.Transactor
	Generator  *Generator
	Clock      utils.Clock
	Logger     *zap.Logger
}

func (s *DefaultAvailabilityService) provider(ctx context.Context, userID string) (*models.Provider, error) {
	prov, err := s.Providers.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Provider profile not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load provider profile", err)
	}
	return prov, nil
}

// SetAvailability validates req, stores it as the provider's declaration
// for that day and regenerates the day's slots in one transaction.
func (s *DefaultAvailabilityService) SetAvailability(ctx context.Context, userID string, req models.AvailabilityRequest) (*models.DaySchedule, error) {
	prov, err := s.provider(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prov.Approved {
		return nil, utils.NewAuthorizationError("Provider not approved yet")
	}

	decl, err := Validate(req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, &utils.AppError{Kind: utils.KindValidation, Message: verr.Message, Err: verr}
		}
		return nil, err
	}
	now := s.Clock.Now()
	decl.ProviderID = prov.ID
	decl.UpdatedAt = now

	var schedule models.DaySchedule
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		saved, err := s.Repo.Upsert(ctx, decl)
		if err != nil {
			return err
		}
		if _, err := s.Generator.Regenerate(ctx, saved, now); err != nil {
			return err
		}
		dayStart, dayEnd := DayBounds(saved.Date)
		slots, err := s.Slots.GetByProviderAndRange(ctx, prov.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		schedule = models.DaySchedule{Availability: saved, Slots: slots}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError("Availability for this day is being updated concurrently, please retry")
		}
		return nil, utils.NewInternalError("Failed to save availability", err)
	}
	return &schedule, nil
}

// GetDay returns the declaration and slots of one day. A day without a
// declaration returns a nil Availability and no slots.
func (s *DefaultAvailabilityService) GetDay(ctx context.Context, userID, date string) (*models.DaySchedule, error) {
	prov, err := s.provider(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, utils.NewValidationError("Date must be formatted as YYYY-MM-DD")
	}

	schedule := &models.DaySchedule{Slots: []models.Slot{}}
	decl, err := s.Repo.GetByProviderAndDate(ctx, prov.ID, day)
	switch {
	case err == nil:
		schedule.Availability = decl
	case !errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewInternalError("Failed to load availability", err)
	}

	// Reclaim lapsed holds so the listing reflects what is bookable.
	if _, err := s.Slots.ReleaseExpired(ctx, prov.ID, s.Clock.Now()); err != nil {
		s.Logger.Warn("Failed to release expired holds", zap.String("providerID", prov.ID), zap.Error(err))
	}
	dayStart, dayEnd := DayBounds(day)
	slots, err := s.Slots.GetByProviderAndRange(ctx, prov.ID, dayStart, dayEnd)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load slots", err)
	}
	schedule.Slots = slots
	return schedule, nil
}
