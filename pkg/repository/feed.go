package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"feedloop/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID            int64      `db:"id"`
	URL           string     `db:"url"`
	SiteURL       string     `db:"site_url"`
	Title         string     `db:"title"`
	LastFetched   *time.Time `db:"last_fetched"`
	FetchInterval int        `db:"fetch_interval"`
	FailingSince  *time.Time `db:"failing_since"`
	Available     bool       `db:"available"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	sqlFeed := &feedSQL{
		URL:           feed.URL,
		SiteURL:       feed.SiteURL,
		Title:         feed.Title,
		FetchInterval: feed.FetchInterval,
		Available:     feed.Available,
	}

	query := `
		INSERT INTO feeds (url, site_url, title, fetch_interval, available)
		VALUES (:url, :site_url, :title, :fetch_interval, :available)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
	if err != nil {
		return fmt.Errorf("create feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	feed.ID = id
	return nil
}

// GetFeed retrieves a feed by ID, returns nil without error when the feed
// no longer exists. A feed can be deleted between job enqueue and execution,
// so absence is a normal condition for callers.
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return toDomainFeed(&sqlFeed), nil
}

// GetFeedByURL retrieves a feed by its fetch URL, nil when not found
func (r *FeedRepository) GetFeedByURL(ctx context.Context, url string) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return toDomainFeed(&sqlFeed), nil
}

// GetActiveFeeds retrieves available feeds that have at least one subscriber,
// the set eligible for automatic scheduling
func (r *FeedRepository) GetActiveFeeds(ctx context.Context) ([]*domain.Feed, error) {
	query := `
		SELECT * FROM feeds
		WHERE available = 1
		AND EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.feed_id = feeds.id)
		ORDER BY id
	`
	var sqlFeeds []feedSQL
	if err := r.db.SelectContext(ctx, &sqlFeeds, query); err != nil {
		return nil, fmt.Errorf("get active feeds: %w", err)
	}

	feeds := make([]*domain.Feed, len(sqlFeeds))
	for i, f := range sqlFeeds {
		feeds[i] = toDomainFeed(&f)
	}
	return feeds, nil
}

// SetAvailable flips feed availability and clears the failing streak on
// reactivation. Used when a new subscription or an explicit retry revives
// a deactivated feed.
func (r *FeedRepository) SetAvailable(ctx context.Context, feedID int64, available bool) error {
	query := `
		UPDATE feeds
		SET available = ?,
		    failing_since = CASE WHEN ? THEN NULL ELSE failing_since END,
		    updated_at = datetime('now')
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, available, available, feedID); err != nil {
		return fmt.Errorf("set feed available: %w", err)
	}
	return nil
}

// UpdateFeedScheduling persists the scheduling state computed by a refresh
// cycle, retrying on SQLite lock errors
func (r *FeedRepository) UpdateFeedScheduling(ctx context.Context, feedID int64, interval int, failingSince *time.Time, available bool) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			UPDATE feeds
			SET fetch_interval = ?,
			    failing_since = ?,
			    available = ?,
			    updated_at = datetime('now')
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, interval, failingSince, available, feedID)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update feed scheduling: %w", err)}
		}
		return nil
	})
}

// DeleteFeed removes a feed; entries and entry states cascade
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}

// toDomainFeed converts feedSQL to domain.Feed
func toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:            sqlFeed.ID,
		URL:           sqlFeed.URL,
		SiteURL:       sqlFeed.SiteURL,
		Title:         sqlFeed.Title,
		LastFetched:   sqlFeed.LastFetched,
		FetchInterval: sqlFeed.FetchInterval,
		FailingSince:  sqlFeed.FailingSince,
		Available:     sqlFeed.Available,
		CreatedAt:     sqlFeed.CreatedAt,
		UpdatedAt:     sqlFeed.UpdatedAt,
	}
}
