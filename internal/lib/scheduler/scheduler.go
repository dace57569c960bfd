package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

type Task = func()

type entry struct {
	id    uint64
	timer *time.Timer
}

// Scheduler runs delayed tasks, at most one pending task per key.
// Scheduling under a key that already has a pending task cancels it.
type Scheduler struct {
	log     *slog.Logger
	mu      sync.Mutex
	tasks   map[string]*entry
	seq     uint64
	stopped bool
}

func New(log *slog.Logger) *Scheduler {
	return &Scheduler{
		log:   log,
		tasks: make(map[string]*entry),
	}
}

// Schedule replaces any pending task under key with task, to run after delay.
// Returns false if the scheduler was stopped.
func (s *Scheduler) Schedule(key string, delay time.Duration, task Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}
	s.seq++
	e := &entry{id: s.seq}
	e.timer = time.AfterFunc(delay, func() { s.fire(key, e.id, task) })
	s.tasks[key] = e
	return true
}

func (s *Scheduler) fire(key string, id uint64, task Task) {
	s.mu.Lock()
	e, ok := s.tasks[key]
	// superseded or canceled after the timer already fired
	if !ok || e.id != id {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, key)
	s.mu.Unlock()

	defer func() {
		if err := recover(); err != nil {
			s.log.Error("scheduled task panicked", "key", key, "err", err)
		}
	}()
	task()
}

// Cancel drops the pending task under key, reporting whether there was one.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tasks[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.tasks, key)
	return true
}

func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending task. Later Schedule calls are refused.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.tasks {
		e.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}
