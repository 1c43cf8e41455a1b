// Package jobs wires recurring background work onto a cron scheduler.
package jobs

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/anthonyshull/franknfurter/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring jobs in-process.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates a stopped Scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// ScheduleRateIngest registers the rate ingest job under the given cron spec.
// Each run gets its own bounded context; a failed run is logged and the next
// scheduled run retries the whole (idempotent) ingest.
func (s *Scheduler) ScheduleRateIngest(spec string, ingest portssvc.RateIngestSvc, timeout time.Duration) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.Info("Starting scheduled rate ingest")
		if err := ingest.IngestRates(ctx, time.Now().UTC()); err != nil {
			s.logger.Error("Scheduled rate ingest failed", slog.String("error", err.Error()))
			return
		}
		s.logger.Info("Scheduled rate ingest completed")
	})
	return err
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
