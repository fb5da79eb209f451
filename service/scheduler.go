package service

import (
	"fmt"
	"time"

	gocron "github.com/go-co-op/gocron/v2"
	"github.com/oklog/ulid/v2"

	"github.com/openabi/calldata-guesser/pkg/logger"
)

// EvictionScheduler runs a caller-supplied history eviction sweep on a
// cron schedule, wrapping a single recurring gocron job.
type EvictionScheduler struct {
	scheduler gocron.Scheduler
	logger    logger.Logger
}

// NewEvictionScheduler builds (but does not start) a scheduler that
// runs sweep on cronExpr.
func NewEvictionScheduler(cronExpr string, log logger.Logger, sweep func()) (*EvictionScheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("scheduler: creating gocron scheduler: %w", err)
	}

	jobID := ulid.Make().String()
	_, err = scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			log.Debug("running history eviction sweep", "job_id", jobID)
			sweep()
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("scheduler: scheduling eviction job %q: %w", cronExpr, err)
	}

	return &EvictionScheduler{scheduler: scheduler, logger: logger.EnsureLogger(log)}, nil
}

func (s *EvictionScheduler) Start() {
	s.logger.Info("starting history eviction scheduler")
	s.scheduler.Start()
}

func (s *EvictionScheduler) Stop() error {
	s.logger.Info("stopping history eviction scheduler")
	return s.scheduler.Shutdown()
}
