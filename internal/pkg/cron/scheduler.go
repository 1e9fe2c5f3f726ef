package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// job is a named function run once at startup and then on every tick of
// its interval.
type job struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

// Scheduler runs background jobs on fixed intervals. It has no notion of
// wall-clock schedules; the jobs here are sweeps and refreshers where
// "every N" is all that matters.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job. Jobs added after Start are not picked up.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
	slog.Info("Scheduled job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per registered job. Each job runs once
// immediately, so a restart never waits a full interval for the first
// sweep.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("Job scheduler started", "jobs", len(s.jobs))
}

// Stop cancels every job and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Job scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.run(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(j)
		}
	}
}

// run executes one job cycle. A failing job is logged and retried on the
// next tick; it never stops the scheduler.
func (s *Scheduler) run(j job) {
	start := time.Now()
	if err := j.fn(s.ctx); err != nil {
		slog.Error("Scheduled job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Scheduled job finished", "name", j.name, "duration", time.Since(start))
}
