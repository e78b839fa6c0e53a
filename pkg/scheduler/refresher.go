package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"feedloop/pkg/domain"
	"feedloop/pkg/fetch"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/jobs.go -pkg mocks -skip-ensure -fmt goimports . JobScheduler

// Store provides the feed and refresh persistence the scheduler needs
type Store interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetActiveFeeds(ctx context.Context) ([]*domain.Feed, error)
	NewCandidates(ctx context.Context, feedID int64, cands []domain.CandidateEntry) ([]domain.CandidateEntry, error)
	CompleteRefresh(ctx context.Context, upd domain.RefreshUpdate) (int, error)
}

// Fetcher retrieves raw feed documents
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (*fetch.Result, error)
}

// Parser turns raw documents into candidate entries
type Parser interface {
	Parse(raw []byte) (*domain.ParsedFeed, error)
}

// JobScheduler registers named recurring jobs. Scheduling a name again
// replaces the previous registration.
type JobScheduler interface {
	Schedule(name string, every, firstIn time.Duration, job func())
	Unschedule(name string)
}

// Refresher runs the refresh cycle for single feeds: fetch, parse, dedup,
// persist, adjust the interval and re-register the next run. At most one
// refresh per feed runs at a time, a second attempt while one is in flight
// is skipped.
type Refresher struct {
	store   Store
	fetcher Fetcher
	parser  Parser
	jobs    JobScheduler
	policy  Policy

	mu       sync.Mutex
	inFlight map[int64]struct{}
	runCtx   context.Context // base context for cron-fired runs
}

// NewRefresher creates a refresher
func NewRefresher(store Store, fetcher Fetcher, parser Parser, jobs JobScheduler, policy Policy) *Refresher {
	return &Refresher{
		store:    store,
		fetcher:  fetcher,
		parser:   parser,
		jobs:     jobs,
		policy:   policy,
		inFlight: make(map[int64]struct{}),
		runCtx:   context.Background(),
	}
}

// JobName returns the scheduler job name for a feed
func JobName(feedID int64) string { return fmt.Sprintf("update_feed_%d", feedID) }

// Refresh runs one refresh cycle for the feed. Fetch and parse failures are
// part of the cycle and never returned as errors, they feed the back-off
// instead. The returned error means the cycle itself could not complete,
// i.e. persistence failed.
func (r *Refresher) Refresh(ctx context.Context, feedID int64) (domain.RefreshResult, error) {
	if !r.tryAcquire(feedID) {
		lgr.Printf("[DEBUG] refresh of feed %d already in flight, skipped", feedID)
		return domain.RefreshResult{FeedID: feedID, Skipped: true}, nil
	}
	defer r.release(feedID)

	feed, err := r.store.GetFeed(ctx, feedID)
	if err != nil {
		return domain.RefreshResult{}, fmt.Errorf("load feed %d: %w", feedID, err)
	}
	if feed == nil {
		// deleted between scheduling and execution
		r.jobs.Unschedule(JobName(feedID))
		lgr.Printf("[INFO] feed %d is gone, removed from schedule", feedID)
		return domain.RefreshResult{FeedID: feedID, Skipped: true}, nil
	}

	now := time.Now()
	outcome := domain.OutcomeNoNewEntries
	upd := domain.RefreshUpdate{FeedID: feed.ID}
	result := domain.RefreshResult{FeedID: feed.ID}

	parsed, fetchErr := r.attempt(ctx, feed.URL)
	switch {
	case fetchErr != nil:
		outcome = classifyFailure(fetchErr)
		result.ErrorMessage = fetchErr.Error()
		lgr.Printf("[WARN] refresh of feed %d (%s) failed with %s: %v", feed.ID, feed.URL, outcome, fetchErr)
	default:
		fresh, err := r.store.NewCandidates(ctx, feed.ID, parsed.Entries)
		if err != nil {
			return domain.RefreshResult{}, fmt.Errorf("dedup candidates for feed %d: %w", feed.ID, err)
		}
		if len(fresh) > 0 {
			outcome = domain.OutcomeNewEntries
		}
		upd.Fetched = true
		upd.Candidates = fresh
		upd.Title = parsed.Title
		upd.SiteURL = parsed.SiteURL
	}

	state := State{
		Interval:     time.Duration(feed.FetchInterval) * time.Second,
		FailingSince: feed.FailingSince,
		Available:    feed.Available,
	}
	next := r.policy.Apply(state, outcome, now)

	upd.Interval = int(next.Interval.Seconds())
	upd.FailingSince = next.FailingSince
	upd.Available = next.Available

	added, err := r.store.CompleteRefresh(ctx, upd)
	if err != nil {
		return domain.RefreshResult{}, fmt.Errorf("persist refresh of feed %d: %w", feed.ID, err)
	}

	result.Outcome = outcome
	result.EntriesAdded = added
	result.Interval = upd.Interval
	result.Available = next.Available

	switch {
	case feed.Available && !next.Available:
		r.jobs.Unschedule(JobName(feed.ID))
		lgr.Printf("[WARN] feed %d (%s) deactivated, failing since %s",
			feed.ID, feed.URL, next.FailingSince.Format(time.RFC3339))
	case next.Available:
		r.scheduleNext(feed.ID, next.Interval)
		lgr.Printf("[INFO] refreshed feed %d (%s): %s, %d new, next in %s",
			feed.ID, feed.URL, outcome, added, next.Interval)
	}
	// a still-unavailable feed stays off the schedule

	return result, nil
}

// scheduleNext registers the next run of the feed's refresh job
func (r *Refresher) scheduleNext(feedID int64, interval time.Duration) {
	r.jobs.Schedule(JobName(feedID), interval, interval, func() {
		if _, err := r.Refresh(r.runContext(), feedID); err != nil {
			lgr.Printf("[ERROR] scheduled refresh of feed %d failed: %v", feedID, err)
		}
	})
}

// attempt fetches and parses the feed, returning the first failure
func (r *Refresher) attempt(ctx context.Context, feedURL string) (*domain.ParsedFeed, error) {
	res, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	parsed, err := r.parser.Parse(res.Body)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func (r *Refresher) tryAcquire(feedID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[feedID]; busy {
		return false
	}
	r.inFlight[feedID] = struct{}{}
	return true
}

func (r *Refresher) release(feedID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, feedID)
}

// setRunContext sets the base context used by cron-fired runs, called once
// before any job is registered
func (r *Refresher) setRunContext(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runCtx = ctx
}

func (r *Refresher) runContext() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runCtx
}

// classifyFailure maps fetch and parse errors onto outcomes. Structural
// problems (bad status, no feed behind the URL, malformed document) are
// permanent, environment problems (network, 5xx) transient. Both back off
// the same way, the distinction matters for logs and API responses.
func classifyFailure(err error) domain.Outcome {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case domain.FetchHTTPStatus:
			if fetchErr.Status >= http.StatusBadRequest && fetchErr.Status < http.StatusInternalServerError {
				return domain.OutcomePermanentFailure
			}
			return domain.OutcomeTransientFailure
		case domain.FetchAutodiscovery, domain.FetchEmptyResponse:
			return domain.OutcomePermanentFailure
		default:
			return domain.OutcomeTransientFailure
		}
	}

	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return domain.OutcomePermanentFailure
	}
	return domain.OutcomeTransientFailure
}
