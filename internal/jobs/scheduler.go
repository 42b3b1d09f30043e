// Package jobs runs the portal's periodic housekeeping on robfig/cron.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one run of a scheduled task. The context carries the run timeout.
type Job func(ctx context.Context) error

// Observer records the outcome of each run
type Observer interface {
	ObserveJob(job string, err error)
}

// Scheduler manages background jobs using cron scheduling.
type Scheduler struct {
	cron     *cron.Cron
	logger   *zap.Logger
	timeout  time.Duration
	observer Observer
	mu       sync.Mutex
	jobs     map[string]cron.EntryID
	runs     map[string]Job
}

// NewScheduler creates a scheduler whose runs are each bounded by timeout.
// observer may be nil.
func NewScheduler(logger *zap.Logger, timeout time.Duration, observer Observer) *Scheduler {
	cronLogger := zapCronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger), cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		)),
		logger:   logger,
		timeout:  timeout,
		observer: observer,
		jobs:     make(map[string]cron.EntryID),
		runs:     make(map[string]Job),
	}
}

// Start starts the scheduler. Jobs added before this call will begin running.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Strings("jobs", s.JobNames()))
	s.cron.Start()
}

// Stop stops scheduling. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob schedules job under name. cronExpr takes a leading seconds field,
// e.g. "0 */15 * * * *", or a descriptor such as "@hourly".
func (s *Scheduler) AddJob(name string, cronExpr string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		_ = s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.runs[name] = job
	s.logger.Info("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))

	return nil
}

// RunNow runs a registered job once, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.runs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not found", name)
	}
	return s.run(name, job)
}

// RemoveJob removes a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(entryID)
	delete(s.jobs, name)
	delete(s.runs, name)

	s.logger.Info("removed scheduled job",
		zap.String("job_name", name))

	return nil
}

// JobNames returns the registered job names, sorted
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) run(name string, job Job) error {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := job(ctx)
	if s.observer != nil {
		s.observer.ObserveJob(name, err)
	}
	if err != nil {
		s.logger.Error("scheduled job failed",
			zap.String("job_name", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return err
	}
	s.logger.Debug("completed scheduled job",
		zap.String("job_name", name),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// zapCronLogger routes cron's own messages (skips, recovered panics) to zap
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
