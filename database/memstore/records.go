package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slotbook/database/repository"
	appointmentRepo "slotbook/database/repository/appointment"
	"slotbook/models"

	"github.com/google/uuid"
)

func dayKey(providerID string, date time.Time) string {
	return providerID + "|" + date.UTC().Format(time.DateOnly)
}

// AvailabilityStore implements availabilityRepo.AvailabilityRepository.
type AvailabilityStore struct{ s *Store }

func (r *AvailabilityStore) EnsureIndexes(ctx context.Context) error { return nil }

func (r *AvailabilityStore) Upsert(ctx context.Context, a *models.Availability) (*models.Availability, error) {
	defer r.s.lock(ctx)()
	k := dayKey(a.ProviderID, a.Date)
	saved := *a
	saved.Breaks = append([]models.Break(nil), a.Breaks...)
	if prev, ok := r.s.availability[k]; ok {
		saved.ID = prev.ID
		saved.CreatedAt = prev.CreatedAt
	} else {
		saved.ID = uuid.New().String()
		saved.CreatedAt = a.UpdatedAt
	}
	r.s.availability[k] = saved
	out := saved
	return &out, nil
}

func (r *AvailabilityStore) GetByProviderAndDate(ctx context.Context, providerID string, date time.Time) (*models.Availability, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.availability[dayKey(providerID, date)]
	if !ok {
		return nil, fmt.Errorf("failed to get availability: %w", repository.ErrNotFound)
	}
	return &a, nil
}

// AppointmentStore implements appointmentRepo.AppointmentRepository.
type AppointmentStore struct{ s *Store }

func (r *AppointmentStore) EnsureIndexes(ctx context.Context) error { return nil }

func (r *AppointmentStore) Create(ctx context.Context, appt *models.Appointment) error {
	defer r.s.lock(ctx)()
	if _, exists := r.s.appointments[appt.ID]; exists {
		return fmt.Errorf("failed to create appointment: %w", repository.ErrDuplicate)
	}
	if appt.IsActive {
		for _, other := range r.s.appointments {
			if other.IsActive && other.ProviderID == appt.ProviderID && other.StartDateTime.Equal(appt.StartDateTime) {
				return fmt.Errorf("failed to create appointment: %w", repository.ErrDuplicate)
			}
		}
	}
	saved := *appt
	saved.StatusHistory = append([]models.StatusChange(nil), appt.StatusHistory...)
	r.s.appointments[appt.ID] = saved
	return nil
}

func (r *AppointmentStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	defer r.s.lock(ctx)()
	appt, ok := r.s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("failed to get appointment: %w", repository.ErrNotFound)
	}
	return &appt, nil
}

func (r *AppointmentStore) list(ctx context.Context, keep func(models.Appointment) bool, asc bool) []models.Appointment {
	defer r.s.lock(ctx)()
	out := []models.Appointment{}
	for _, appt := range r.s.appointments {
		if keep(appt) {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].StartDateTime.Before(out[j].StartDateTime)
		}
		return out[i].StartDateTime.After(out[j].StartDateTime)
	})
	return out
}

func (r *AppointmentStore) ListByConsumer(ctx context.Context, consumerID string) ([]models.Appointment, error) {
	return r.list(ctx, func(a models.Appointment) bool { return a.ConsumerID == consumerID }, false), nil
}

func (r *AppointmentStore) ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error) {
	return r.list(ctx, func(a models.Appointment) bool {
		return a.ProviderID == providerID && inRange(a.StartDateTime, from, to)
	}, true), nil
}

func (r *AppointmentStore) UpdateStatus(ctx context.Context, id string, u appointmentRepo.StatusUpdate) (*models.Appointment, error) {
	defer r.s.lock(ctx)()
	appt, ok := r.s.appointments[id]
	if !ok || !statusIn(appt.Status, u.From) {
		return nil, fmt.Errorf("failed to update appointment status: %w", repository.ErrNoMatch)
	}

	at := u.At
	appt.Status = u.To
	appt.UpdatedAt = at
	switch u.To {
	case models.AppointmentCancelled:
		appt.CancelledAt = &at
		appt.CancelledBy = u.By
		if u.Reason != "" {
			appt.CancellationReason = u.Reason
		}
	case models.AppointmentAttended:
		appt.AttendedAt = &at
	}
	if u.Deactivate {
		appt.IsActive = false
	}
	history := make([]models.StatusChange, 0, len(appt.StatusHistory)+1)
	history = append(history, appt.StatusHistory...)
	appt.StatusHistory = append(history, models.StatusChange{Status: u.To, ChangedAt: at, ChangedBy: u.By})

	r.s.appointments[id] = appt
	return &appt, nil
}

func statusIn(s models.AppointmentStatus, set []models.AppointmentStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// PaymentStore implements paymentRepo.PaymentRepository.
type PaymentStore struct{ s *Store }

func (r *PaymentStore) EnsureIndexes(ctx context.Context) error { return nil }

func (r *PaymentStore) Create(ctx context.Context, p *models.Payment) error {
	defer r.s.lock(ctx)()
	if _, exists := r.s.payments[p.ID]; exists {
		return fmt.Errorf("failed to create payment: %w", repository.ErrDuplicate)
	}
	for _, other := range r.s.payments {
		if other.AppointmentID == p.AppointmentID {
			return fmt.Errorf("failed to create payment: %w", repository.ErrDuplicate)
		}
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentStore) GetByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	defer r.s.lock(ctx)()
	for _, p := range r.s.payments {
		if p.AppointmentID == appointmentID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("failed to get payment: %w", repository.ErrNotFound)
}

// Count returns the number of stored payments.
func (r *PaymentStore) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.payments)
}

// Count returns the number of stored appointments.
func (r *AppointmentStore) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.appointments)
}
