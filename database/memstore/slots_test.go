package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"slotbook/database/repository"
	"slotbook/models"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func seedSlot(t *testing.T, s *Store, id string, start time.Time) {
	t.Helper()
	_, err := s.Slots().InsertMany(context.Background(), []models.Slot{{
		ID:            id,
		ProviderID:    "prov-1",
		StartDateTime: start,
		EndDateTime:   start.Add(30 * time.Minute),
		Status:        models.SlotAvailable,
		IsActive:      true,
	}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestHoldPreconditions(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedSlot(t, s, "s1", base.Add(2*time.Hour))
	slots := s.Slots()

	held, err := slots.Hold(ctx, "s1", "alice", base, base.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	if held.Status != models.SlotLocked || held.LockedBy != "alice" {
		t.Fatalf("unexpected slot after hold: %+v", held)
	}

	if _, err := slots.Hold(ctx, "s1", "bob", base.Add(time.Minute), base.Add(11*time.Minute)); !errors.Is(err, repository.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for competing hold, got %v", err)
	}

	// Re-hold by the owner extends the hold.
	ext, err := slots.Hold(ctx, "s1", "alice", base.Add(time.Minute), base.Add(20*time.Minute))
	if err != nil {
		t.Fatalf("re-hold: %v", err)
	}
	if !ext.LockExpiry.Equal(base.Add(20 * time.Minute)) {
		t.Fatalf("expected extended expiry, got %v", ext.LockExpiry)
	}

	// Lapsed holds can be taken over.
	if _, err := slots.Hold(ctx, "s1", "bob", base.Add(21*time.Minute), base.Add(31*time.Minute)); err != nil {
		t.Fatalf("takeover of lapsed hold: %v", err)
	}
}

func TestHoldRejectsPastSlot(t *testing.T) {
	s := New()
	seedSlot(t, s, "s1", base)
	if _, err := s.Slots().Hold(context.Background(), "s1", "alice", base, base.Add(10*time.Minute)); !errors.Is(err, repository.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for slot starting now, got %v", err)
	}
}

func TestConcurrentHoldsOneWinner(t *testing.T) {
	s := New()
	seedSlot(t, s, "s1", base.Add(time.Hour))

	const n = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			requester := string(rune('a' + i))
			if _, err := s.Slots().Hold(context.Background(), "s1", requester, base, base.Add(10*time.Minute)); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winning hold, got %d", wins)
	}
}

func TestCommitRequiresLiveHold(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedSlot(t, s, "s1", base.Add(time.Hour))
	slots := s.Slots()

	if _, err := slots.Hold(ctx, "s1", "alice", base, base.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := slots.Commit(ctx, "s1", "bob", base.Add(time.Minute)); !errors.Is(err, repository.ErrNoMatch) {
		t.Fatalf("non-owner commit: expected ErrNoMatch, got %v", err)
	}
	if _, err := slots.Commit(ctx, "s1", "alice", base.Add(10*time.Minute)); !errors.Is(err, repository.ErrNoMatch) {
		t.Fatalf("commit at expiry: expected ErrNoMatch, got %v", err)
	}
	if _, err := slots.Hold(ctx, "s1", "alice", base.Add(10*time.Minute), base.Add(20*time.Minute)); err != nil {
		t.Fatal(err)
	}
	booked, err := slots.Commit(ctx, "s1", "alice", base.Add(11*time.Minute))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if booked.Status != models.SlotBooked || booked.LockedBy != "" || booked.LockExpiry != nil {
		t.Fatalf("unexpected committed slot: %+v", booked)
	}
}

func TestReleaseExpired(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedSlot(t, s, "s1", base.Add(time.Hour))
	seedSlot(t, s, "s2", base.Add(2*time.Hour))
	slots := s.Slots()

	if _, err := slots.Hold(ctx, "s1", "alice", base, base.Add(5*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := slots.Hold(ctx, "s2", "bob", base, base.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}

	n, err := slots.ReleaseExpired(ctx, "prov-1", base.Add(5*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 released hold, got %d", n)
	}
	s1, _ := slots.GetByID(ctx, "s1")
	if s1.Status != models.SlotAvailable || s1.LockedBy != "" {
		t.Fatalf("s1 not released: %+v", s1)
	}
	s2, _ := slots.GetByID(ctx, "s2")
	if s2.Status != models.SlotLocked {
		t.Fatalf("s2 released early: %+v", s2)
	}
}

// A lock without an expiry counts as lapsed, matching the Mongo filters.
func TestLockWithoutExpiryIsLapsed(t *testing.T) {
	ctx := context.Background()
	s := New()
	slots := s.Slots()
	start := base.Add(time.Hour)
	_, err := slots.InsertMany(ctx, []models.Slot{
		{ID: "s1", ProviderID: "prov-1", StartDateTime: start, EndDateTime: start.Add(30 * time.Minute), Status: models.SlotLocked, LockedBy: "alice", IsActive: true},
		{ID: "s2", ProviderID: "prov-1", StartDateTime: start.Add(time.Hour), EndDateTime: start.Add(90 * time.Minute), Status: models.SlotLocked, LockedBy: "alice", IsActive: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := slots.Commit(ctx, "s1", "alice", base); !errors.Is(err, repository.ErrNoMatch) {
		t.Fatalf("commit without expiry: expected ErrNoMatch, got %v", err)
	}
	held, err := slots.Hold(ctx, "s1", "bob", base, base.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("bob should take over a lock without expiry: %v", err)
	}
	if held.LockedBy != "bob" || held.LockExpiry == nil {
		t.Fatalf("unexpected hold: %+v", held)
	}

	n, err := slots.ReleaseExpired(ctx, "", base)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected only s2 reclaimed, got %d", n)
	}
	s2, _ := slots.GetByID(ctx, "s2")
	if s2.Status != models.SlotAvailable || s2.LockedBy != "" {
		t.Fatalf("s2 not reclaimed: %+v", s2)
	}
}

func TestInsertManyRejectsDuplicateStart(t *testing.T) {
	s := New()
	seedSlot(t, s, "s1", base)
	_, err := s.Slots().InsertMany(context.Background(), []models.Slot{
		{ID: "s2", ProviderID: "prov-1", StartDateTime: base.Add(time.Hour)},
		{ID: "s3", ProviderID: "prov-1", StartDateTime: base},
	})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := s.Slots().GetByID(context.Background(), "s2"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("partial batch was written: %v", err)
	}
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedSlot(t, s, "s1", base.Add(time.Hour))

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Slots().Hold(ctx, "s1", "alice", base, base.Add(10*time.Minute)); err != nil {
			return err
		}
		if err := s.Appointments().Create(ctx, &models.Appointment{ID: "a1", ProviderID: "prov-1", IsActive: true}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	slot, _ := s.Slots().GetByID(ctx, "s1")
	if slot.Status != models.SlotAvailable {
		t.Fatalf("slot write survived rollback: %+v", slot)
	}
	if s.Appointments().Count() != 0 {
		t.Fatal("appointment write survived rollback")
	}
}
