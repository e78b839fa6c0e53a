package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/pkg/domain"
	"feedloop/pkg/scheduler/mocks"
)

func TestScheduler_Start(t *testing.T) {
	lastFetched := time.Now().Add(-10 * time.Minute)
	overdue := time.Now().Add(-3 * time.Hour)

	feeds := []*domain.Feed{
		{ID: 1, URL: "https://a.example.com/feed", FetchInterval: 3600, Available: true, LastFetched: &lastFetched},
		{ID: 2, URL: "https://b.example.com/feed", FetchInterval: 1800, Available: true}, // never fetched
		{ID: 3, URL: "https://c.example.com/feed", FetchInterval: 3600, Available: true, LastFetched: &overdue},
	}

	store := &mocks.StoreMock{
		GetActiveFeedsFunc: func(ctx context.Context) ([]*domain.Feed, error) { return feeds, nil },
		// overdue feeds go through a full refresh on start; report them
		// gone so the cycle stops at the unschedule path
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) { return nil, nil },
	}
	jobs := &mocks.JobSchedulerMock{
		ScheduleFunc:   func(name string, every, firstIn time.Duration, job func()) {},
		UnscheduleFunc: func(name string) {},
	}

	s := NewScheduler(Params{Store: store, Fetcher: &mocks.FetcherMock{}, Parser: &mocks.ParserMock{},
		Jobs: jobs, Policy: DefaultPolicy()})
	require.NoError(t, s.Start(context.Background()))

	calls := jobs.ScheduleCalls()
	require.Len(t, calls, 1, "only the feed with a future due time gets a plain registration")
	assert.Equal(t, "update_feed_1", calls[0].Name)
	assert.Equal(t, time.Hour, calls[0].Every)
	assert.InDelta(t, (50 * time.Minute).Seconds(), calls[0].FirstIn.Seconds(), 5,
		"first run lands where the feed's own cadence says it should")

	// the never-fetched and overdue feeds are refreshed by the catch-up pool
	require.Eventually(t, func() bool { return len(store.GetFeedCalls()) == 2 },
		2*time.Second, 10*time.Millisecond, "both overdue feeds are refreshed on start")
}

func TestScheduler_Start_StoreError(t *testing.T) {
	store := &mocks.StoreMock{
		GetActiveFeedsFunc: func(ctx context.Context) ([]*domain.Feed, error) {
			return nil, errors.New("db gone")
		},
	}

	s := NewScheduler(Params{Store: store, Fetcher: &mocks.FetcherMock{}, Parser: &mocks.ParserMock{},
		Jobs: &mocks.JobSchedulerMock{}, Policy: DefaultPolicy()})
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load active feeds")
}

func TestScheduler_UnscheduleFeed(t *testing.T) {
	jobs := &mocks.JobSchedulerMock{UnscheduleFunc: func(name string) {}}

	s := NewScheduler(Params{Store: &mocks.StoreMock{}, Fetcher: &mocks.FetcherMock{},
		Parser: &mocks.ParserMock{}, Jobs: jobs, Policy: DefaultPolicy()})
	s.UnscheduleFeed(9)

	require.Len(t, jobs.UnscheduleCalls(), 1)
	assert.Equal(t, "update_feed_9", jobs.UnscheduleCalls()[0].Name)
}

func TestScheduler_RefreshNow(t *testing.T) {
	store := &mocks.StoreMock{
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) { return nil, nil },
	}
	jobs := &mocks.JobSchedulerMock{UnscheduleFunc: func(name string) {}}

	s := NewScheduler(Params{Store: store, Fetcher: &mocks.FetcherMock{}, Parser: &mocks.ParserMock{},
		Jobs: jobs, Policy: DefaultPolicy()})
	res, err := s.RefreshNow(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, res.Skipped, "refreshing a missing feed is a no-op")
}

func TestFirstRunIn(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-20 * time.Minute)
	old := now.Add(-2 * time.Hour)

	tests := []struct {
		name string
		feed *domain.Feed
		want time.Duration
	}{
		{"never fetched", &domain.Feed{FetchInterval: 3600}, 0},
		{"fetched recently", &domain.Feed{FetchInterval: 3600, LastFetched: &recent}, 40 * time.Minute},
		{"past due", &domain.Feed{FetchInterval: 3600, LastFetched: &old}, 0},
		{"due exactly now", &domain.Feed{FetchInterval: 7200, LastFetched: &old}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval := time.Duration(tt.feed.FetchInterval) * time.Second
			assert.Equal(t, tt.want, firstRunIn(tt.feed, interval, now))
		})
	}
}
