package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a single run of a recurring task.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on fixed intervals. Each named job ticks in its
// own goroutine; a failing run is logged and the next tick still fires.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*recurring
	log  *zap.Logger
}

type recurring struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a Scheduler that reports job failures through log.
func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		jobs: make(map[string]*recurring),
		log:  log,
	}
}

// ScheduleRecurring registers job to run every interval. Scheduling a name
// that is already active stops the previous job first, so a name never ticks
// twice. Ticks for one name run serially; a run that outlasts the interval
// makes the ticker drop the missed ticks.
func (s *Scheduler) ScheduleRecurring(name string, interval time.Duration, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.jobs[name]; ok {
		prev.cancel()
		delete(s.jobs, name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &recurring{cancel: cancel, done: make(chan struct{})}
	s.jobs[name] = r

	go s.run(ctx, name, interval, job, r.done)
	s.log.Info("job scheduled", zap.String("job", name), zap.Duration("interval", interval))
}

// Stop cancels the named job. Future ticks stop immediately; an in-flight
// run is left to finish. No-op for unknown names.
func (s *Scheduler) Stop(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.jobs[name]
	if !ok {
		return
	}
	r.cancel()
	delete(s.jobs, name)
	s.log.Info("job stopped", zap.String("job", name))
}

// StopAll cancels every job and waits for in-flight runs to return.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	stopped := make([]*recurring, 0, len(s.jobs))
	for name, r := range s.jobs {
		r.cancel()
		stopped = append(stopped, r)
		delete(s.jobs, name)
	}
	s.mu.Unlock()

	for _, r := range stopped {
		<-r.done
	}
}

func (s *Scheduler) run(ctx context.Context, name string, interval time.Duration, job Job, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, name, job)
		}
	}
}

// runOnce isolates a single run: errors and panics are logged, never
// propagated, so one bad run cannot kill the schedule or the process.
func (s *Scheduler) runOnce(ctx context.Context, name string, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("job panicked",
				zap.String("job", name),
				zap.Error(fmt.Errorf("panic: %v", rec)),
			)
		}
	}()
	if err := job(ctx); err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
	}
}
