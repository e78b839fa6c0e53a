// Package jobs provides a named recurring job registry on top of robfig
// cron. Each job has a unique name; scheduling an existing name replaces
// the previous registration, which lets callers move a job to a new
// interval without tracking entry ids themselves.
package jobs

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CronScheduler runs named recurring jobs
type CronScheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewCronScheduler creates a stopped scheduler, call Start to begin firing
func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(),
		entries: map[string]cron.EntryID{},
	}
}

// Start begins running scheduled jobs in a background goroutine
func (s *CronScheduler) Start() { s.cron.Start() }

// Stop stops firing new jobs and waits for running ones to complete
func (s *CronScheduler) Stop() { <-s.cron.Stop().Done() }

// Schedule registers a job to first fire after firstIn and then every
// interval. A job with the same name is replaced.
func (s *CronScheduler) Schedule(name string, every, firstIn time.Duration, job func()) {
	if every < time.Second {
		every = time.Second
	}
	if firstIn <= 0 {
		firstIn = 100 * time.Millisecond
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
	}
	sched := &delaySchedule{first: time.Now().Add(firstIn), every: every}
	s.entries[name] = s.cron.Schedule(sched, cron.FuncJob(job))
}

// Unschedule removes a job by name, no-op for unknown names
func (s *CronScheduler) Unschedule(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
}

// Scheduled reports whether a job with the name is registered
func (s *CronScheduler) Scheduled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[name]
	return ok
}

// Len returns the number of registered jobs
func (s *CronScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// delaySchedule fires once at a fixed time and every interval after that.
// Cron's own Every schedule cannot express a first run offset different
// from the interval.
type delaySchedule struct {
	first time.Time
	every time.Duration
}

// Next implements cron.Schedule
func (d *delaySchedule) Next(t time.Time) time.Time {
	if t.Before(d.first) {
		return d.first
	}
	return t.Add(d.every)
}
