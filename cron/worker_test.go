package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotbook/models"
	"slotbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeReclaimer struct {
	providers []string
	expired   int
	err       error
}

func (f *fakeReclaimer) ReleaseExpired(ctx context.Context, providerID string) (int64, error) {
	f.providers = append(f.providers, providerID)
	return 1, f.err
}

func (f *fakeReclaimer) ExpirePast(ctx context.Context) (int64, error) {
	f.expired++
	return 0, nil
}

func TestReleaseTaskReclaimsProvider(t *testing.T) {
	r := &fakeReclaimer{}
	mux := NewMux(r, zap.NewNop())

	task, _, err := tasks.NewReleaseTask(models.ReleasePayload{SlotID: "s1", ProviderID: "p1"}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	if len(r.providers) != 1 || r.providers[0] != "p1" {
		t.Fatalf("expected a scoped release for p1, got %v", r.providers)
	}
}

func TestReleaseTaskRejectsBadPayload(t *testing.T) {
	mux := NewMux(&fakeReclaimer{}, zap.NewNop())
	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeReleaseHold, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestSweepTask(t *testing.T) {
	r := &fakeReclaimer{}
	mux := NewMux(r, zap.NewNop())
	if err := mux.ProcessTask(context.Background(), tasks.NewSweepTask()); err != nil {
		t.Fatal(err)
	}
	if len(r.providers) != 1 || r.providers[0] != "" || r.expired != 1 {
		t.Fatalf("sweep should release across providers and expire past slots: %+v", r)
	}

	r.err = errors.New("store down")
	if err := mux.ProcessTask(context.Background(), tasks.NewSweepTask()); err == nil {
		t.Fatal("expected sweep error to surface for retry")
	}
}
