package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"feedloop/pkg/domain"
)

// RefreshRepository applies the result of one refresh cycle. Entry
// ingestion, unread fan-out, counter recomputation and feed scheduling state
// are committed in a single transaction so readers never observe new entries
// without matching counts.
type RefreshRepository struct {
	db *sqlx.DB
}

// NewRefreshRepository creates a new refresh repository
func NewRefreshRepository(database *sqlx.DB) *RefreshRepository {
	return &RefreshRepository{db: database}
}

// CompleteRefresh persists a refresh cycle and returns the number of newly
// created entries. Candidates already known to the feed, by guid or by link,
// are ignored. The whole operation retries on SQLite lock errors and is
// idempotent for a repeated candidate batch.
func (r *RefreshRepository) CompleteRefresh(ctx context.Context, upd domain.RefreshUpdate) (int, error) {
	added := 0
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		added = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin refresh tx: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		for _, cand := range upd.Candidates {
			created, err := insertCandidate(ctx, tx, upd.FeedID, cand)
			if err != nil {
				if isLockError(err) {
					return err // retry
				}
				return &criticalError{err: err}
			}
			if created {
				added++
			}
		}

		if upd.Fetched {
			// recompute cached unread counts from entry states, the source
			// of truth. Done unconditionally on success to repair any drift
			// from subscribe/unsubscribe races.
			if err := recomputeFeedUnread(ctx, tx, upd.FeedID); err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: err}
			}
		}

		if err := updateFeedState(ctx, tx, upd); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: err}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit refresh tx: %w", err)}
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return added, nil
}

// NewCandidates returns the subset of candidates not yet known to the feed,
// by guid or by link. Refreshes run one at a time per feed, so the answer
// stays valid until the matching CompleteRefresh commits.
func (r *RefreshRepository) NewCandidates(ctx context.Context, feedID int64, cands []domain.CandidateEntry) ([]domain.CandidateEntry, error) {
	fresh := make([]domain.CandidateEntry, 0, len(cands))
	seen := make(map[string]struct{}, len(cands)) // guard against in-batch duplicates

	for _, cand := range cands {
		if _, ok := seen[cand.GUID]; ok {
			continue
		}
		seen[cand.GUID] = struct{}{}

		var exists bool
		err := r.db.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM entries WHERE feed_id = ? AND guid = ?)",
			feedID, cand.GUID)
		if err != nil {
			return nil, fmt.Errorf("check candidate by guid: %w", err)
		}
		if !exists && cand.Link != "" {
			err = r.db.GetContext(ctx, &exists,
				"SELECT EXISTS(SELECT 1 FROM entries WHERE feed_id = ? AND link = ?)",
				feedID, cand.Link)
			if err != nil {
				return nil, fmt.Errorf("check candidate by link: %w", err)
			}
		}
		if !exists {
			fresh = append(fresh, cand)
		}
	}
	return fresh, nil
}

// insertCandidate creates the entry and fans out unread states to all
// current subscribers. Returns false when the entry is a duplicate.
func insertCandidate(ctx context.Context, tx *sqlx.Tx, feedID int64, cand domain.CandidateEntry) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM entries WHERE feed_id = ? AND guid = ?)",
		feedID, cand.GUID)
	if err != nil {
		return false, fmt.Errorf("check entry by guid: %w", err)
	}
	if !exists && cand.Link != "" {
		// feeds occasionally rotate guids for the same article, the link
		// is the secondary identity
		err = tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM entries WHERE feed_id = ? AND link = ?)",
			feedID, cand.Link)
		if err != nil {
			return false, fmt.Errorf("check entry by link: %w", err)
		}
	}
	if exists {
		return false, nil
	}

	var published *time.Time
	if !cand.Published.IsZero() {
		published = &cand.Published
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO entries (feed_id, guid, link, title, summary, author, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, feedID, cand.GUID, cand.Link, cand.Title, cand.Summary, cand.Author, published)
	if err != nil {
		return false, fmt.Errorf("create entry: %w", err)
	}

	entryID, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("get entry insert id: %w", err)
	}

	// unread state for every current subscriber; OR IGNORE makes the
	// fan-out idempotent against concurrent subscribes
	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO entry_states (user_id, entry_id, read)
		SELECT user_id, ?, 0 FROM subscriptions WHERE feed_id = ?
	`, entryID, feedID)
	if err != nil {
		return false, fmt.Errorf("fan out entry states: %w", err)
	}

	return true, nil
}

// recomputeFeedUnread refreshes the cached unread counter of every
// subscription of the feed from entry_states
func recomputeFeedUnread(ctx context.Context, tx *sqlx.Tx, feedID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET unread_count = (
		        SELECT COUNT(*)
		        FROM entry_states es
		        JOIN entries e ON e.id = es.entry_id
		        WHERE e.feed_id = subscriptions.feed_id
		          AND es.user_id = subscriptions.user_id
		          AND es.read = 0
		    ),
		    updated_at = datetime('now')
		WHERE feed_id = ?
	`, feedID)
	if err != nil {
		return fmt.Errorf("recompute unread counts: %w", err)
	}
	return nil
}

// updateFeedState persists interval, failing streak, availability and feed
// metadata in the refresh transaction
func updateFeedState(ctx context.Context, tx *sqlx.Tx, upd domain.RefreshUpdate) error {
	query := `
		UPDATE feeds
		SET fetch_interval = ?,
		    failing_since = ?,
		    available = ?,
		    last_fetched = CASE WHEN ? THEN datetime('now') ELSE last_fetched END,
		    title = CASE WHEN ? != '' THEN ? ELSE title END,
		    site_url = CASE WHEN ? != '' THEN ? ELSE site_url END,
		    updated_at = datetime('now')
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		upd.Interval, upd.FailingSince, upd.Available,
		upd.Fetched,
		upd.Title, upd.Title,
		upd.SiteURL, upd.SiteURL,
		upd.FeedID)
	if err != nil {
		return fmt.Errorf("update feed state: %w", err)
	}
	return nil
}
