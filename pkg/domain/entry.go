package domain

import "time"

// Entry represents a single article within a feed. Entries are owned by
// their feed and immutable after ingestion.
type Entry struct {
	ID        int64
	FeedID    int64
	GUID      string
	Link      string
	Title     string
	Summary   string
	Author    string
	Published time.Time
	CreatedAt time.Time
}

// EntryState is one user's read marker for one entry
type EntryState struct {
	ID      int64
	UserID  int64
	EntryID int64
	Read    bool
}

// CandidateEntry is a parsed entry before deduplication
type CandidateEntry struct {
	GUID      string
	Link      string
	Title     string
	Summary   string
	Author    string
	Published time.Time
}

// ParsedFeed is the result of parsing a raw feed document
type ParsedFeed struct {
	Title   string
	SiteURL string
	Entries []CandidateEntry
}
