// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	appinquiry "github.com/secondhandshop/backend/internal/application/inquiry"
	"go.uber.org/zap"
)

// EmailProcessor delivers due inquiry notifications
type EmailProcessor interface {
	ProcessPending(ctx context.Context) (appinquiry.ProcessResult, error)
}

// EmailRetrySchedulerConfig holds configuration for the email retry job
type EmailRetrySchedulerConfig struct {
	// Schedule is a standard five-field cron spec or a descriptor such as "@every 1m"
	Schedule string
	// RunTimeout bounds a single run
	RunTimeout time.Duration
}

// DefaultEmailRetrySchedulerConfig returns the default configuration
func DefaultEmailRetrySchedulerConfig() EmailRetrySchedulerConfig {
	return EmailRetrySchedulerConfig{
		Schedule:   "@every 1m",
		RunTimeout: 2 * time.Minute,
	}
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a cron spec
func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty schedule", ErrInvalidConfig)
	}
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, spec, err)
	}
	return schedule, nil
}

// EmailRetryScheduler periodically resends failed and pending inquiry emails.
// Runs never overlap; a tick that fires while a run is active is skipped.
type EmailRetryScheduler struct {
	config    EmailRetrySchedulerConfig
	processor EmailProcessor
	logger    *zap.Logger

	job cron.Job

	mu      sync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewEmailRetryScheduler creates a new scheduler
func NewEmailRetryScheduler(config EmailRetrySchedulerConfig, processor EmailProcessor, logger *zap.Logger) *EmailRetryScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.RunTimeout <= 0 {
		config.RunTimeout = DefaultEmailRetrySchedulerConfig().RunTimeout
	}
	s := &EmailRetryScheduler{
		config:    config,
		processor: processor,
		logger:    logger.With(zap.String("job", "email_retry")),
		baseCtx:   context.Background(),
	}
	cl := newCronLogger(s.logger)
	s.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(s.run))
	return s
}

// Start schedules the job. ctx scopes every run until Stop is called.
func (s *EmailRetryScheduler) Start(ctx context.Context) error {
	schedule, err := ParseSchedule(s.config.Schedule)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return ErrSchedulerAlreadyRunning
	}

	s.baseCtx, s.cancel = context.WithCancel(ctx)
	s.cron = cron.New(cron.WithParser(cronParser), cron.WithLogger(newCronLogger(s.logger)))
	s.cron.Schedule(schedule, s.job)
	s.cron.Start()

	s.logger.Info("Email retry scheduler started",
		zap.String("schedule", s.config.Schedule),
		zap.Time("next_run_at", schedule.Next(time.Now())))
	return nil
}

// Stop halts scheduling, cancels an in-flight run and waits for it to return
func (s *EmailRetryScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.baseCtx = context.Background()
	s.mu.Unlock()

	if c == nil {
		return ErrSchedulerNotRunning
	}

	stopped := c.Stop()
	cancel()

	select {
	case <-stopped.Done():
		s.logger.Info("Email retry scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether Start has been called without a matching Stop
func (s *EmailRetryScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// RunNow executes one run through the same non-overlapping chain the
// schedule uses. It returns immediately when a run is already active.
func (s *EmailRetryScheduler) RunNow() {
	s.job.Run()
}

func (s *EmailRetryScheduler) run() {
	s.mu.Lock()
	base := s.baseCtx
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.processor.ProcessPending(ctx)
	if err != nil {
		s.logger.Error("Email retry run failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	s.logger.Info("Email retry run completed",
		zap.Int("processed", result.Processed),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start)))
}
