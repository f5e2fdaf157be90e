package jobs

import (
	"context"

	"isoko-backend/internal/application/lifecycle"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ExpiryJob periodically sweeps listings past their expires_at into the
// expired state.
type ExpiryJob struct {
	lifecycle *lifecycle.Service
	scheduler *cron.Cron
	schedule  string
}

func NewExpiryJob(svc *lifecycle.Service, schedule string) *ExpiryJob {
	return &ExpiryJob{
		lifecycle: svc,
		scheduler: cron.New(),
		schedule:  schedule,
	}
}

// SetupAndStart registers the sweep on its cron schedule and starts the
// scheduler. An empty schedule disables the job.
func (j *ExpiryJob) SetupAndStart() error {
	if j.schedule == "" {
		log.Info().Msg("Listing expiry job disabled (no schedule configured)")
		return nil
	}

	_, err := j.scheduler.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.scheduler.Start()
	log.Info().Str("schedule", j.schedule).Msg("Listing expiry job scheduled")
	return nil
}

func (j *ExpiryJob) run() {
	ctx := context.Background()
	expired, err := j.lifecycle.ExpireOverdue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Listing expiry sweep failed")
		return
	}
	if expired > 0 {
		log.Info().Int("expired", expired).Msg("Listing expiry sweep completed")
	}
}

// Stop halts the scheduler, letting a running sweep finish.
func (j *ExpiryJob) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
