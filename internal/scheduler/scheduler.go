package scheduler

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyInterval = errors.New("job interval must be positive")
)

// Service wraps a gocron scheduler for the background refresh jobs.
type Service struct {
	scheduler gocron.Scheduler
	stopOnce  sync.Once
	stopErr   error
}

// New creates a scheduler with panic logging on every job.
func New() (*Service, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Service{scheduler: sched}, nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	log.Info().Msg("Scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and prevents new jobs from running.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		log.Info().Msg("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// Every registers a fixed-interval job that also runs once immediately at
// startup, so the snapshot it maintains is warm before the first request.
func (s *Service) Every(name string, interval time.Duration, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if interval <= 0 {
		return nil, ErrEmptyInterval
	}
	jobLogger := log.With().Str("job_name", name).Dur("interval", interval).Logger()
	jobLogger.Info().Msg("Registering scheduler job")

	wrappedTask := func() {
		jobLogger.Debug().Msg("Scheduler job started")
		task()
		jobLogger.Debug().Msg("Scheduler job completed")
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register scheduler job")
		return nil, err
	}
	return job, nil
}
