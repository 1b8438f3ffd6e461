package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/hibiken/asynq"
)

const (
	TypeReleaseHold  = "slot:release-hold"
	TypeSweepExpired = "slot:sweep-expired"
)

// NewReleaseTask builds a task that fires at fireAt, the real instant the
// hold lapses.
func NewReleaseTask(payload models.ReleasePayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReleaseHold, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// NewSweepTask builds the periodic all-provider sweep task.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSweepExpired, nil)
}

// AsynqScheduler enqueues hold-expiry tasks on an asynq queue. Location is
// the slot timezone that naive lock expiries are expressed in.
type AsynqScheduler struct {
	Client   *asynq.Client
	Location *time.Location
}

func (s *AsynqScheduler) ScheduleRelease(ctx context.Context, payload models.ReleasePayload) error {
	// A second of slack so the lock is strictly past its expiry on arrival.
	fireAt := utils.FromNaive(payload.LockExpiry, s.Location).Add(time.Second)
	task, opts, err := NewReleaseTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build release task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue release task: %w", err)
	}
	return nil
}
