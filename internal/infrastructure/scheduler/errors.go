package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when stopping a scheduler that never started
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrSchedulerAlreadyRunning is returned by a second Start
	ErrSchedulerAlreadyRunning = errors.New("scheduler is already running")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
