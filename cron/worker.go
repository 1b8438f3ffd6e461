package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotbook/config"
	"slotbook/models"
	"slotbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Reclaimer is the slice of the booking service the worker drives.
type Reclaimer interface {
	ReleaseExpired(ctx context.Context, providerID string) (int64, error)
	ExpirePast(ctx context.Context) (int64, error)
}

// RedisOpt returns the asynq connection for the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux routes slot maintenance tasks to reclaimer.
func NewMux(reclaimer Reclaimer, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReleaseHold, handleReleaseTask(reclaimer, logger))
	mux.HandleFunc(tasks.TypeSweepExpired, handleSweepTask(reclaimer, logger))
	return mux
}

// Worker runs the task server and the periodic sweep scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// InitSlotWorker starts the async worker and the periodic sweeper in the
// background.
func InitSlotWorker(reclaimer Reclaimer, logger *zap.Logger) (*Worker, error) {
	redisOpts := RedisOpt()

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(config.AppConfig.SweepInterval, tasks.NewSweepTask()); err != nil {
		return nil, fmt.Errorf("invalid sweep interval %q: %w", config.AppConfig.SweepInterval, err)
	}

	w := &Worker{server: srv, scheduler: scheduler, mux: NewMux(reclaimer, logger), logger: logger}

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting slot worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(w.mux); err != nil {
				logger.Warn("Failed to start slot worker", zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("Max retry attempts reached; expired holds will only be reclaimed on reads")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("Sweep scheduler stopped", zap.Error(err))
		}
	}()

	return w, nil
}

// Shutdown stops the scheduler and drains in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Slot worker stopped")
}

func handleReleaseTask(reclaimer Reclaimer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid release payload", zap.Error(err))
			return fmt.Errorf("invalid release payload: %v: %w", err, asynq.SkipRetry)
		}
		n, err := reclaimer.ReleaseExpired(ctx, p.ProviderID)
		if err != nil {
			return err
		}
		logger.Debug("Release task ran",
			zap.String("slotID", p.SlotID),
			zap.String("providerID", p.ProviderID),
			zap.Int64("released", n))
		return nil
	}
}

func handleSweepTask(reclaimer Reclaimer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		released, err := reclaimer.ReleaseExpired(ctx, "")
		if err != nil {
			return err
		}
		expired, err := reclaimer.ExpirePast(ctx)
		if err != nil {
			return err
		}
		if released > 0 || expired > 0 {
			logger.Info("Sweep completed", zap.Int64("released", released), zap.Int64("expired", expired))
		}
		return nil
	}
}
