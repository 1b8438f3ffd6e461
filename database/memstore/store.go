// Package memstore is an in-process implementation of every repository
// and of database.Transactor. It backs tests and single-node development
// runs (DATABASE_DRIVER=memory).
package memstore

import (
	"context"
	"sync"

	"slotbook/models"
)

type txKey struct{}

// Store holds all collections behind a single mutex. A transaction holds
// the mutex for its whole duration and restores a snapshot on error.
type Store struct {
	mu sync.Mutex

	slots        map[string]models.Slot
	availability map[string]models.Availability
	appointments map[string]models.Appointment
	payments     map[string]models.Payment
	providers    map[string]models.Provider
	consumers    map[string]models.Consumer
}

func New() *Store {
	return &Store{
		slots:        map[string]models.Slot{},
		availability: map[string]models.Availability{},
		appointments: map[string]models.Appointment{},
		payments:     map[string]models.Payment{},
		providers:    map[string]models.Provider{},
		consumers:    map[string]models.Consumer{},
	}
}

// lock acquires the store mutex unless ctx already runs inside one of
// this store's transactions.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTransaction runs fn atomically. Nested calls join the outer
// transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

type snapshot struct {
	slots        map[string]models.Slot
	availability map[string]models.Availability
	appointments map[string]models.Appointment
	payments     map[string]models.Payment
	providers    map[string]models.Provider
	consumers    map[string]models.Consumer
}

// Values are stored by copy and never mutated in place, so shallow map
// copies are enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		slots:        copyMap(s.slots),
		availability: copyMap(s.availability),
		appointments: copyMap(s.appointments),
		payments:     copyMap(s.payments),
		providers:    copyMap(s.providers),
		consumers:    copyMap(s.consumers),
	}
}

func (s *Store) restore(snap snapshot) {
	s.slots = snap.slots
	s.availability = snap.availability
	s.appointments = snap.appointments
	s.payments = snap.payments
	s.providers = snap.providers
	s.consumers = snap.consumers
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) Slots() *SlotStore                { return &SlotStore{s} }
func (s *Store) Availability() *AvailabilityStore { return &AvailabilityStore{s} }
func (s *Store) Appointments() *AppointmentStore  { return &AppointmentStore{s} }
func (s *Store) Payments() *PaymentStore          { return &PaymentStore{s} }
func (s *Store) Providers() *ProviderStore        { return &ProviderStore{s} }
func (s *Store) Consumers() *ConsumerStore        { return &ConsumerStore{s} }
