// Package scheduler runs named background jobs on fixed intervals or cron specs
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spoilerguard/internal/platform/logger"

	"github.com/go-co-op/gocron"
)

// Task is a unit of scheduled work, ctx is canceled when the scheduler stops
type Task func(ctx context.Context) error

// Scheduler wraps gocron with named jobs and zerolog reporting
// overlapping runs of the same job are skipped
type Scheduler struct {
	s   *gocron.Scheduler
	log logger.Logger

	mu      sync.Mutex
	jobs    map[string]*gocron.Job
	running bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a stopped scheduler on UTC
func New() *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:      s,
		log:    *logger.Named("scheduler"),
		jobs:   map[string]*gocron.Job{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Every registers task to run each interval, the first run happens one interval after Start
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: job %s: non positive interval %s", name, interval)
	}
	return s.add(name, interval.String(), func(sc *gocron.Scheduler) *gocron.Scheduler {
		return sc.Every(interval).WaitForSchedule()
	}, task)
}

// Cron registers task on a standard five field cron spec
func (s *Scheduler) Cron(name, spec string, task Task) error {
	return s.add(name, spec, func(sc *gocron.Scheduler) *gocron.Scheduler {
		return sc.Cron(spec)
	}, task)
}

func (s *Scheduler) add(name, desc string, plan func(*gocron.Scheduler) *gocron.Scheduler, task Task) error {
	if name == "" || task == nil {
		return fmt.Errorf("scheduler: job needs a name and a task")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("scheduler: job %s already registered", name)
	}
	job, err := plan(s.s).Tag(name).Do(func() { s.run(name, task) })
	if err != nil {
		return fmt.Errorf("scheduler: job %s (%s): %w", name, desc, err)
	}
	s.jobs[name] = job
	s.log.Debug().Str("job", name).Str("schedule", desc).Msg("job registered")
	return nil
}

func (s *Scheduler) run(name string, task Task) {
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			s.log.Error().Str("job", name).Interface("panic", v).Msg("job panicked")
		}
	}()
	if err := task(s.ctx); err != nil {
		s.log.Warn().Err(err).Str("job", name).Dur("elapsed", time.Since(start)).Msg("job failed")
		return
	}
	s.log.Debug().Str("job", name).Dur("elapsed", time.Since(start)).Msg("job done")
}

// Start begins running registered jobs in the background
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.s.StartAsync()
	s.running = true
	s.log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop cancels the task context and waits for gocron to halt
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.s.Stop()
	s.running = false
	s.log.Info().Msg("scheduler stopped")
}

// NextRun reports when the named job fires next
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	return j.NextRun(), true
}
