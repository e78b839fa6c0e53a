package domain

import "time"

// Feed represents a remote syndication source, identified by its fetch URL
type Feed struct {
	ID            int64
	URL           string
	SiteURL       string
	Title         string
	LastFetched   *time.Time
	FetchInterval int // seconds, kept within the scheduling policy bounds
	FailingSince  *time.Time
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subscription binds a user to a feed and caches the unread entry count.
// UpdatedAt doubles as a cache-invalidation signal for clients.
type Subscription struct {
	ID          int64
	UserID      int64
	FeedID      int64
	FolderID    *int64
	UnreadCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Folder groups feeds for one user; a feed belongs to at most one folder per user
type Folder struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// User is the owner of subscriptions, folders and entry states
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
