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

// EntryRepository handles entry-related database operations
type EntryRepository struct {
	db *sqlx.DB
}

// entrySQL represents an entry for SQL operations
type entrySQL struct {
	ID        int64      `db:"id"`
	FeedID    int64      `db:"feed_id"`
	GUID      string     `db:"guid"`
	Link      string     `db:"link"`
	Title     string     `db:"title"`
	Summary   string     `db:"summary"`
	Author    string     `db:"author"`
	Published *time.Time `db:"published"`
	CreatedAt time.Time  `db:"created_at"`
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(database *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: database}
}

// GetEntry retrieves an entry by ID, nil when not found
func (r *EntryRepository) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	var sqlEntry entrySQL
	err := r.db.GetContext(ctx, &sqlEntry, "SELECT * FROM entries WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return toDomainEntry(&sqlEntry), nil
}

// GetEntries retrieves entries of a feed, newest first
func (r *EntryRepository) GetEntries(ctx context.Context, feedID int64, limit int) ([]*domain.Entry, error) {
	query := `
		SELECT * FROM entries
		WHERE feed_id = ?
		ORDER BY published DESC, id DESC
		LIMIT ?
	`
	var sqlEntries []entrySQL
	if err := r.db.SelectContext(ctx, &sqlEntries, query, feedID, limit); err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}

	entries := make([]*domain.Entry, len(sqlEntries))
	for i, e := range sqlEntries {
		entries[i] = toDomainEntry(&e)
	}
	return entries, nil
}

// CountEntries returns the number of entries for a feed
func (r *EntryRepository) CountEntries(ctx context.Context, feedID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM entries WHERE feed_id = ?", feedID)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// EntryExists checks whether an entry with the given guid is already known
// for the feed
func (r *EntryRepository) EntryExists(ctx context.Context, feedID int64, guid string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM entries WHERE feed_id = ? AND guid = ?)",
		feedID, guid)
	if err != nil {
		return false, fmt.Errorf("check entry exists: %w", err)
	}
	return exists, nil
}

// toDomainEntry converts entrySQL to domain.Entry
func toDomainEntry(sqlEntry *entrySQL) *domain.Entry {
	entry := &domain.Entry{
		ID:        sqlEntry.ID,
		FeedID:    sqlEntry.FeedID,
		GUID:      sqlEntry.GUID,
		Link:      sqlEntry.Link,
		Title:     sqlEntry.Title,
		Summary:   sqlEntry.Summary,
		Author:    sqlEntry.Author,
		CreatedAt: sqlEntry.CreatedAt,
	}
	if sqlEntry.Published != nil {
		entry.Published = *sqlEntry.Published
	}
	return entry
}
