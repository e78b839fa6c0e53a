package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"feedloop/pkg/domain"
)

// SubscriptionRepository handles subscriptions, folders and the denormalized
// unread counters hanging off them
type SubscriptionRepository struct {
	db *sqlx.DB
}

// subscriptionSQL represents a subscription for SQL operations
type subscriptionSQL struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	FeedID      int64     `db:"feed_id"`
	FolderID    *int64    `db:"folder_id"`
	UnreadCount int       `db:"unread_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// folderSQL represents a folder for SQL operations
type folderSQL struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(database *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: database}
}

// Subscribe creates a subscription and backfills unread states for the
// feed's existing entries, all in one transaction. Idempotent: subscribing
// twice returns the existing subscription unchanged.
func (r *SubscriptionRepository) Subscribe(ctx context.Context, userID, feedID int64, folderID *int64) (*domain.Subscription, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin subscribe tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO subscriptions (user_id, feed_id, folder_id)
		VALUES (?, ?, ?)
	`, userID, feedID, folderID)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	// unread state for every entry already in the feed; OR IGNORE keeps
	// the backfill idempotent against a concurrent refresh fan-out
	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO entry_states (user_id, entry_id, read)
		SELECT ?, id, 0 FROM entries WHERE feed_id = ?
	`, userID, feedID)
	if err != nil {
		return nil, fmt.Errorf("backfill entry states: %w", err)
	}

	if err := recomputePairUnread(ctx, tx, userID, feedID); err != nil {
		return nil, err
	}

	var sqlSub subscriptionSQL
	err = tx.GetContext(ctx, &sqlSub,
		"SELECT * FROM subscriptions WHERE user_id = ? AND feed_id = ?", userID, feedID)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit subscribe tx: %w", err)
	}
	return toDomainSubscription(&sqlSub), nil
}

// Unsubscribe removes the subscription and the user's entry states for the
// feed. When the last subscriber leaves, the feed itself is destroyed and
// its entries cascade. Returns whether the feed was deleted.
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, userID, feedID int64) (feedDeleted bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin unsubscribe tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM entry_states
		WHERE user_id = ?
		AND entry_id IN (SELECT id FROM entries WHERE feed_id = ?)
	`, userID, feedID)
	if err != nil {
		return false, fmt.Errorf("delete entry states: %w", err)
	}

	var folderID *int64
	err = tx.GetContext(ctx, &folderID,
		"SELECT folder_id FROM subscriptions WHERE user_id = ? AND feed_id = ?", userID, feedID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("get subscription folder: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE user_id = ? AND feed_id = ?", userID, feedID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}

	if folderID != nil {
		if err := pruneEmptyFolder(ctx, tx, *folderID); err != nil {
			return false, err
		}
	}

	var remaining int
	err = tx.GetContext(ctx, &remaining,
		"SELECT COUNT(*) FROM subscriptions WHERE feed_id = ?", feedID)
	if err != nil {
		return false, fmt.Errorf("count subscribers: %w", err)
	}

	if remaining == 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", feedID); err != nil {
			return false, fmt.Errorf("delete orphaned feed: %w", err)
		}
		feedDeleted = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit unsubscribe tx: %w", err)
	}
	return feedDeleted, nil
}

// GetSubscription retrieves one subscription, nil when not found
func (r *SubscriptionRepository) GetSubscription(ctx context.Context, userID, feedID int64) (*domain.Subscription, error) {
	var sqlSub subscriptionSQL
	err := r.db.GetContext(ctx, &sqlSub,
		"SELECT * FROM subscriptions WHERE user_id = ? AND feed_id = ?", userID, feedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return toDomainSubscription(&sqlSub), nil
}

// ListSubscriptions returns all subscriptions of a user
func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context, userID int64) ([]*domain.Subscription, error) {
	var sqlSubs []subscriptionSQL
	err := r.db.SelectContext(ctx, &sqlSubs,
		"SELECT * FROM subscriptions WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	subs := make([]*domain.Subscription, len(sqlSubs))
	for i, s := range sqlSubs {
		subs[i] = toDomainSubscription(&s)
	}
	return subs, nil
}

// CountSubscribers returns the number of users subscribed to a feed
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, feedID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM subscriptions WHERE feed_id = ?", feedID)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}

// FeedUnread returns the unread count for one user and feed, recomputed
// from entry states rather than the cached counter
func (r *SubscriptionRepository) FeedUnread(ctx context.Context, userID, feedID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM entry_states es
		JOIN entries e ON e.id = es.entry_id
		WHERE es.user_id = ? AND e.feed_id = ? AND es.read = 0
	`, userID, feedID)
	if err != nil {
		return 0, fmt.Errorf("feed unread count: %w", err)
	}
	return count, nil
}

// FolderUnread returns the summed unread count over the folder's feeds,
// from the cached per-subscription counters
func (r *SubscriptionRepository) FolderUnread(ctx context.Context, userID, folderID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COALESCE(SUM(unread_count), 0)
		FROM subscriptions
		WHERE user_id = ? AND folder_id = ?
	`, userID, folderID)
	if err != nil {
		return 0, fmt.Errorf("folder unread count: %w", err)
	}
	if count < 0 {
		return 0, fmt.Errorf("folder unread count is negative (%d), counters corrupted", count)
	}
	return count, nil
}

// TotalUnread returns the summed unread count over all the user's feeds
func (r *SubscriptionRepository) TotalUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COALESCE(SUM(unread_count), 0)
		FROM subscriptions
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("total unread count: %w", err)
	}
	if count < 0 {
		return 0, fmt.Errorf("total unread count is negative (%d), counters corrupted", count)
	}
	return count, nil
}

// RefreshUnreadCount recomputes the cached counter for one subscription
// from entry states, repairing any drift
func (r *SubscriptionRepository) RefreshUnreadCount(ctx context.Context, userID, feedID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh count tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := recomputePairUnread(ctx, tx, userID, feedID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh count tx: %w", err)
	}
	return nil
}

// MarkEntry sets the read flag of one entry for one user and refreshes the
// cached counter of the affected subscription
func (r *SubscriptionRepository) MarkEntry(ctx context.Context, userID, entryID int64, read bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark entry tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entry_states (user_id, entry_id, read) VALUES (?, ?, ?)
		ON CONFLICT(user_id, entry_id) DO UPDATE SET read = excluded.read
	`, userID, entryID, read)
	if err != nil {
		return fmt.Errorf("mark entry: %w", err)
	}

	var feedID int64
	err = tx.GetContext(ctx, &feedID, "SELECT feed_id FROM entries WHERE id = ?", entryID)
	if err != nil {
		return fmt.Errorf("get entry feed: %w", err)
	}

	if err := recomputePairUnread(ctx, tx, userID, feedID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark entry tx: %w", err)
	}
	return nil
}

// MarkFeedRead marks every entry of the feed as read for the user
func (r *SubscriptionRepository) MarkFeedRead(ctx context.Context, userID, feedID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark feed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		UPDATE entry_states SET read = 1
		WHERE user_id = ?
		AND entry_id IN (SELECT id FROM entries WHERE feed_id = ?)
	`, userID, feedID)
	if err != nil {
		return fmt.Errorf("mark feed read: %w", err)
	}

	if err := recomputePairUnread(ctx, tx, userID, feedID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark feed tx: %w", err)
	}
	return nil
}

// GetOrCreateFolder returns the user's folder with the given name, creating
// it when missing
func (r *SubscriptionRepository) GetOrCreateFolder(ctx context.Context, userID int64, name string) (*domain.Folder, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO folders (user_id, name) VALUES (?, ?)", userID, name)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	var sqlFolder folderSQL
	err = r.db.GetContext(ctx, &sqlFolder,
		"SELECT * FROM folders WHERE user_id = ? AND name = ?", userID, name)
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &domain.Folder{ID: sqlFolder.ID, UserID: sqlFolder.UserID, Name: sqlFolder.Name, CreatedAt: sqlFolder.CreatedAt}, nil
}

// ListFolders returns all folders of a user
func (r *SubscriptionRepository) ListFolders(ctx context.Context, userID int64) ([]*domain.Folder, error) {
	var sqlFolders []folderSQL
	err := r.db.SelectContext(ctx, &sqlFolders,
		"SELECT * FROM folders WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	folders := make([]*domain.Folder, len(sqlFolders))
	for i, f := range sqlFolders {
		folders[i] = &domain.Folder{ID: f.ID, UserID: f.UserID, Name: f.Name, CreatedAt: f.CreatedAt}
	}
	return folders, nil
}

// MoveToFolder places the subscription into a folder (nil removes it from
// any folder) and deletes the previous folder when it becomes empty
func (r *SubscriptionRepository) MoveToFolder(ctx context.Context, userID, feedID int64, folderID *int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev *int64
	err = tx.GetContext(ctx, &prev,
		"SELECT folder_id FROM subscriptions WHERE user_id = ? AND feed_id = ?", userID, feedID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("subscription not found for user %d feed %d", userID, feedID)
	}
	if err != nil {
		return fmt.Errorf("get current folder: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE subscriptions SET folder_id = ?, updated_at = datetime('now')
		WHERE user_id = ? AND feed_id = ?
	`, folderID, userID, feedID)
	if err != nil {
		return fmt.Errorf("move subscription: %w", err)
	}

	if prev != nil && (folderID == nil || *prev != *folderID) {
		if err := pruneEmptyFolder(ctx, tx, *prev); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move tx: %w", err)
	}
	return nil
}

// recomputePairUnread refreshes the cached counter of one subscription from
// entry_states inside the given transaction
func recomputePairUnread(ctx context.Context, tx *sqlx.Tx, userID, feedID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET unread_count = (
		        SELECT COUNT(*)
		        FROM entry_states es
		        JOIN entries e ON e.id = es.entry_id
		        WHERE e.feed_id = ? AND es.user_id = ? AND es.read = 0
		    ),
		    updated_at = datetime('now')
		WHERE user_id = ? AND feed_id = ?
	`, feedID, userID, userID, feedID)
	if err != nil {
		return fmt.Errorf("recompute unread count: %w", err)
	}
	return nil
}

// pruneEmptyFolder deletes the folder when no subscription references it
func pruneEmptyFolder(ctx context.Context, tx *sqlx.Tx, folderID int64) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM folders
		WHERE id = ?
		AND NOT EXISTS (SELECT 1 FROM subscriptions WHERE folder_id = ?)
	`, folderID, folderID)
	if err != nil {
		return fmt.Errorf("prune empty folder: %w", err)
	}
	return nil
}

// toDomainSubscription converts subscriptionSQL to domain.Subscription
func toDomainSubscription(s *subscriptionSQL) *domain.Subscription {
	return &domain.Subscription{
		ID:          s.ID,
		UserID:      s.UserID,
		FeedID:      s.FeedID,
		FolderID:    s.FolderID,
		UnreadCount: s.UnreadCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
