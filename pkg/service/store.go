package service

import (
	"context"

	"feedloop/pkg/domain"
	"feedloop/pkg/repository"
)

// SchedulerStore bundles the repositories the refresh scheduler needs into
// its single store dependency
type SchedulerStore struct {
	feeds   *repository.FeedRepository
	refresh *repository.RefreshRepository
}

// NewSchedulerStore creates the scheduler's storage facade
func NewSchedulerStore(feeds *repository.FeedRepository, refresh *repository.RefreshRepository) *SchedulerStore {
	return &SchedulerStore{feeds: feeds, refresh: refresh}
}

// GetFeed retrieves a feed by ID, nil when not found
func (s *SchedulerStore) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return s.feeds.GetFeed(ctx, id)
}

// GetActiveFeeds retrieves all feeds eligible for automatic scheduling
func (s *SchedulerStore) GetActiveFeeds(ctx context.Context) ([]*domain.Feed, error) {
	return s.feeds.GetActiveFeeds(ctx)
}

// NewCandidates filters out candidates already known to the feed
func (s *SchedulerStore) NewCandidates(ctx context.Context, feedID int64, cands []domain.CandidateEntry) ([]domain.CandidateEntry, error) {
	return s.refresh.NewCandidates(ctx, feedID, cands)
}

// CompleteRefresh persists one refresh cycle atomically
func (s *SchedulerStore) CompleteRefresh(ctx context.Context, upd domain.RefreshUpdate) (int, error) {
	return s.refresh.CompleteRefresh(ctx, upd)
}
