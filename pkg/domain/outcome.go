package domain

import "time"

// Outcome classifies a single fetch attempt for the adaptive scheduler
type Outcome int

// fetch outcomes, in order of decreasing health
const (
	OutcomeNewEntries Outcome = iota
	OutcomeNoNewEntries
	OutcomeTransientFailure
	OutcomePermanentFailure
)

// Failure reports whether the outcome is any kind of fetch failure
func (o Outcome) Failure() bool {
	return o == OutcomeTransientFailure || o == OutcomePermanentFailure
}

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case OutcomeNewEntries:
		return "new_entries"
	case OutcomeNoNewEntries:
		return "no_new_entries"
	case OutcomeTransientFailure:
		return "transient_failure"
	case OutcomePermanentFailure:
		return "permanent_failure"
	}
	return "unknown"
}

// RefreshResult summarizes one refresh cycle for a feed
type RefreshResult struct {
	FeedID       int64
	Outcome      Outcome
	EntriesAdded int
	Interval     int // seconds
	Available    bool
	Skipped      bool   // true when another refresh of the feed was already running
	ErrorMessage string // fetch or parse error, empty on success
}

// RefreshUpdate carries everything a refresh cycle persists for a feed.
// The whole update is applied in a single transaction so readers never see
// new entries without the matching unread counts.
type RefreshUpdate struct {
	FeedID       int64
	Candidates   []CandidateEntry // empty on failed fetch
	Fetched      bool             // true when the fetch succeeded, bumps last_fetched
	Title        string           // feed metadata refresh, ignored when empty
	SiteURL      string
	Interval     int // seconds
	FailingSince *time.Time
	Available    bool
}
