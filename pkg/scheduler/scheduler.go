package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"feedloop/pkg/domain"
)

// Scheduler owns the refresh schedule: on start it registers a recurring job
// for every active feed, honoring each feed's own interval and last fetch
// time, and catches up overdue feeds with a bounded worker pool. After that
// the jobs are self-sustaining, every completed refresh registers its own
// next run.
type Scheduler struct {
	store      Store
	jobs       JobScheduler
	refresher  *Refresher
	maxWorkers int
}

// Params contains all scheduler dependencies
type Params struct {
	Store      Store
	Fetcher    Fetcher
	Parser     Parser
	Jobs       JobScheduler
	Policy     Policy
	MaxWorkers int // concurrent catch-up refreshes on start, default 5
}

// NewScheduler creates a scheduler with the given dependencies
func NewScheduler(params Params) *Scheduler {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{
		store:      params.Store,
		jobs:       params.Jobs,
		refresher:  NewRefresher(params.Store, params.Fetcher, params.Parser, params.Jobs, params.Policy),
		maxWorkers: params.MaxWorkers,
	}
}

// Start loads all active feeds and registers their refresh jobs. Feeds past
// due run immediately through a bounded worker pool, each completed refresh
// registers its own next run. The context becomes the base context of every
// scheduled run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.refresher.setRunContext(ctx)

	feeds, err := s.store.GetActiveFeeds(ctx)
	if err != nil {
		return fmt.Errorf("load active feeds: %w", err)
	}

	now := time.Now()
	var overdue []int64
	for _, feed := range feeds {
		interval := time.Duration(feed.FetchInterval) * time.Second
		firstIn := firstRunIn(feed, interval, now)
		if firstIn == 0 {
			overdue = append(overdue, feed.ID)
			continue
		}
		s.jobs.Schedule(JobName(feed.ID), interval, firstIn, s.runJob(feed.ID))
	}

	if len(overdue) > 0 {
		go s.catchUp(ctx, overdue)
	}

	lgr.Printf("[INFO] scheduler started with %d active feeds, %d overdue", len(feeds), len(overdue))
	return nil
}

// catchUp refreshes overdue feeds with at most maxWorkers in flight, so a
// restart after downtime doesn't hammer every feed host at once
func (s *Scheduler) catchUp(ctx context.Context, feedIDs []int64) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for _, feedID := range feedIDs {
		g.Go(func() error {
			if _, err := s.refresher.Refresh(gctx, feedID); err != nil {
				lgr.Printf("[ERROR] catch-up refresh of feed %d failed: %v", feedID, err)
			}
			return nil
		})
	}

	_ = g.Wait()
	lgr.Printf("[DEBUG] catch-up of %d overdue feeds done", len(feedIDs))
}

// RefreshNow runs a refresh cycle for the feed immediately, outside its
// schedule. Used for manual refreshes and retries of deactivated feeds; a
// success re-registers the feed's recurring job.
func (s *Scheduler) RefreshNow(ctx context.Context, feedID int64) (domain.RefreshResult, error) {
	return s.refresher.Refresh(ctx, feedID)
}

// UnscheduleFeed removes the feed's refresh job, used when the feed is
// deleted
func (s *Scheduler) UnscheduleFeed(feedID int64) {
	s.jobs.Unschedule(JobName(feedID))
}

func (s *Scheduler) runJob(feedID int64) func() {
	return func() {
		if _, err := s.refresher.Refresh(s.refresher.runContext(), feedID); err != nil {
			lgr.Printf("[ERROR] scheduled refresh of feed %d failed: %v", feedID, err)
		}
	}
}

// firstRunIn computes the delay before a feed's first refresh after startup.
// Feeds past due or never fetched run right away.
func firstRunIn(feed *domain.Feed, interval time.Duration, now time.Time) time.Duration {
	if feed.LastFetched == nil {
		return 0
	}
	due := feed.LastFetched.Add(interval)
	if !due.After(now) {
		return 0
	}
	return due.Sub(now)
}
