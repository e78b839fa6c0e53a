package scheduler

import (
	"math"
	"time"

	"feedloop/pkg/domain"
)

// Policy holds the adaptive refresh interval parameters. Active feeds are
// polled more often, quiet or failing feeds progressively less, and a feed
// failing for longer than DeactivateAfter is taken off the schedule.
type Policy struct {
	Min             time.Duration
	Max             time.Duration
	Speedup         float64 // interval multiplier when a fetch finds new entries, below 1
	Slowdown        float64 // interval multiplier on quiet or failed fetches, above 1
	DeactivateAfter time.Duration
}

// DefaultPolicy returns the standard scheduling parameters
func DefaultPolicy() Policy {
	return Policy{
		Min:             15 * time.Minute,
		Max:             24 * time.Hour,
		Speedup:         0.9,
		Slowdown:        1.1,
		DeactivateAfter: 7 * 24 * time.Hour,
	}
}

// State is the scheduling state of one feed, the part of the feed row this
// policy owns
type State struct {
	Interval     time.Duration
	FailingSince *time.Time
	Available    bool
}

// NextInterval computes the next fetch interval for an outcome, always
// clamped to [Min, Max]
func (p Policy) NextInterval(current time.Duration, outcome domain.Outcome) time.Duration {
	mult := p.Slowdown
	if outcome == domain.OutcomeNewEntries {
		mult = p.Speedup
	}

	secs := math.Round(current.Seconds() * mult)
	next := time.Duration(secs) * time.Second

	if next < p.Min {
		next = p.Min
	}
	if next > p.Max {
		next = p.Max
	}
	return next
}

// Apply transitions the scheduling state for one fetch outcome. Pure except
// for the failing-streak comparison against now: the first failure in a
// streak stamps FailingSince, later failures keep the original stamp, and
// any success clears it. A streak older than DeactivateAfter turns the feed
// unavailable; a successful fetch makes it available again.
func (p Policy) Apply(s State, outcome domain.Outcome, now time.Time) State {
	next := State{Interval: p.NextInterval(s.Interval, outcome)}

	if !outcome.Failure() {
		next.Available = true
		return next
	}

	since := s.FailingSince
	if since == nil {
		t := now
		since = &t
	}
	next.FailingSince = since
	next.Available = s.Available
	if now.Sub(*since) > p.DeactivateAfter {
		next.Available = false
	}
	return next
}
