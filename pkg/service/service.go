// Package service implements the user-facing operations of the reader:
// subscribing to feeds by URL, unsubscribing, read state changes, folder
// management and unread summaries. It sits between the HTTP server and the
// repositories and owns the rules that span both, like feed lifecycle on
// first and last subscriber.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"feedloop/pkg/domain"
	"feedloop/pkg/repository"
)

//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Scheduler runs refresh cycles outside the regular schedule and manages
// the refresh jobs of feeds
type Scheduler interface {
	RefreshNow(ctx context.Context, feedID int64) (domain.RefreshResult, error)
	UnscheduleFeed(feedID int64)
}

// Service implements reader operations on top of the repositories
type Service struct {
	repos           *repository.Repositories
	scheduler       Scheduler
	defaultInterval time.Duration
}

// NewService creates a service. New feeds start at defaultInterval, the
// adaptive policy takes over from the first refresh.
func NewService(repos *repository.Repositories, scheduler Scheduler, defaultInterval time.Duration) *Service {
	return &Service{repos: repos, scheduler: scheduler, defaultInterval: defaultInterval}
}

// UnreadSummary aggregates the unread counts of one user
type UnreadSummary struct {
	Total         int                  `json:"total"`
	Subscriptions []SubscriptionUnread `json:"subscriptions"`
	Folders       []FolderUnread       `json:"folders"`
}

// SubscriptionUnread is the unread count of one subscribed feed
type SubscriptionUnread struct {
	FeedID      int64  `json:"feed_id"`
	Title       string `json:"title"`
	FolderID    *int64 `json:"folder_id,omitempty"`
	UnreadCount int    `json:"unread_count"`
}

// FolderUnread is the summed unread count of one folder
type FolderUnread struct {
	FolderID    int64  `json:"folder_id"`
	Name        string `json:"name"`
	UnreadCount int    `json:"unread_count"`
}

// Subscribe subscribes the user to the feed behind rawURL. An unknown URL
// creates the feed and validates it with an immediate refresh, a failed
// validation rolls the feed back, so feeds only exist after at least one
// successful fetch. Subscribing to a deactivated feed retries it.
func (s *Service) Subscribe(ctx context.Context, userID int64, rawURL, folderName string) (*domain.Subscription, error) {
	user, err := s.repos.User.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	feedURL, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	feed, err := s.repos.Feed.GetFeedByURL(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	switch {
	case feed == nil:
		if feed, err = s.createFeed(ctx, feedURL); err != nil {
			return nil, err
		}
	case !feed.Available:
		// a fresh subscription is an explicit retry of a dead feed
		if err = s.retryFeed(ctx, feed.ID); err != nil {
			return nil, err
		}
	}

	var folderID *int64
	if strings.TrimSpace(folderName) != "" {
		folder, err := s.repos.Subscription.GetOrCreateFolder(ctx, userID, strings.TrimSpace(folderName))
		if err != nil {
			return nil, err
		}
		folderID = &folder.ID
	}

	sub, err := s.repos.Subscription.Subscribe(ctx, userID, feed.ID, folderID)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] user %d subscribed to feed %d (%s)", userID, feed.ID, feedURL)
	return sub, nil
}

// createFeed registers a new feed and validates it with an immediate
// refresh. The refresh also ingests the feed's current entries and puts it
// on the schedule.
func (s *Service) createFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	feed := &domain.Feed{
		URL:           feedURL,
		FetchInterval: int(s.defaultInterval.Seconds()),
		Available:     true,
	}
	if err := s.repos.Feed.CreateFeed(ctx, feed); err != nil {
		return nil, err
	}

	res, err := s.scheduler.RefreshNow(ctx, feed.ID)
	if err != nil {
		_ = s.repos.Feed.DeleteFeed(ctx, feed.ID)
		return nil, fmt.Errorf("validate feed %s: %w", feedURL, err)
	}
	if res.ErrorMessage != "" {
		s.scheduler.UnscheduleFeed(feed.ID)
		_ = s.repos.Feed.DeleteFeed(ctx, feed.ID)
		return nil, fmt.Errorf("feed %s is not usable: %s", feedURL, res.ErrorMessage)
	}

	lgr.Printf("[INFO] created feed %d (%s), %d entries", feed.ID, feedURL, res.EntriesAdded)
	return feed, nil
}

// retryFeed runs an immediate refresh of a deactivated feed. A success
// reactivates and reschedules it inside the refresh cycle; a failure leaves
// it deactivated and is reported to the caller.
func (s *Service) retryFeed(ctx context.Context, feedID int64) error {
	res, err := s.scheduler.RefreshNow(ctx, feedID)
	if err != nil {
		return err
	}
	if res.ErrorMessage != "" {
		return fmt.Errorf("feed %d is still unreachable: %s", feedID, res.ErrorMessage)
	}
	return nil
}

// Unsubscribe removes the user's subscription. The last subscriber destroys
// the feed and takes it off the refresh schedule.
func (s *Service) Unsubscribe(ctx context.Context, userID, feedID int64) error {
	sub, err := s.repos.Subscription.GetSubscription(ctx, userID, feedID)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("user %d is not subscribed to feed %d", userID, feedID)
	}

	feedDeleted, err := s.repos.Subscription.Unsubscribe(ctx, userID, feedID)
	if err != nil {
		return err
	}
	if feedDeleted {
		s.scheduler.UnscheduleFeed(feedID)
		lgr.Printf("[INFO] feed %d destroyed, last subscriber left", feedID)
	}
	return nil
}

// RefreshFeed runs a refresh cycle for the feed right now, outside its
// schedule. Works on deactivated feeds too, this is the manual retry path.
func (s *Service) RefreshFeed(ctx context.Context, feedID int64) (domain.RefreshResult, error) {
	feed, err := s.repos.Feed.GetFeed(ctx, feedID)
	if err != nil {
		return domain.RefreshResult{}, err
	}
	if feed == nil {
		return domain.RefreshResult{}, fmt.Errorf("feed %d not found", feedID)
	}
	return s.scheduler.RefreshNow(ctx, feedID)
}

// MarkEntry sets the read flag of one entry for the user
func (s *Service) MarkEntry(ctx context.Context, userID, entryID int64, read bool) error {
	entry, err := s.repos.Entry.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry %d not found", entryID)
	}
	return s.repos.Subscription.MarkEntry(ctx, userID, entryID, read)
}

// MarkFeedRead marks every entry of the feed as read for the user
func (s *Service) MarkFeedRead(ctx context.Context, userID, feedID int64) error {
	sub, err := s.repos.Subscription.GetSubscription(ctx, userID, feedID)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("user %d is not subscribed to feed %d", userID, feedID)
	}
	return s.repos.Subscription.MarkFeedRead(ctx, userID, feedID)
}

// MoveToFolder places the user's subscription into the named folder,
// creating the folder when missing. An empty name removes the subscription
// from its folder.
func (s *Service) MoveToFolder(ctx context.Context, userID, feedID int64, folderName string) error {
	var folderID *int64
	if strings.TrimSpace(folderName) != "" {
		folder, err := s.repos.Subscription.GetOrCreateFolder(ctx, userID, strings.TrimSpace(folderName))
		if err != nil {
			return err
		}
		folderID = &folder.ID
	}
	return s.repos.Subscription.MoveToFolder(ctx, userID, feedID, folderID)
}

// Unread builds the user's unread summary: the total, per-subscription and
// per-folder counts, all from the cached counters
func (s *Service) Unread(ctx context.Context, userID int64) (*UnreadSummary, error) {
	total, err := s.repos.Subscription.TotalUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repos.Subscription.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &UnreadSummary{Total: total, Subscriptions: make([]SubscriptionUnread, 0, len(subs))}
	for _, sub := range subs {
		feed, err := s.repos.Feed.GetFeed(ctx, sub.FeedID)
		if err != nil {
			return nil, err
		}
		title := ""
		if feed != nil {
			title = feed.Title
		}
		summary.Subscriptions = append(summary.Subscriptions, SubscriptionUnread{
			FeedID:      sub.FeedID,
			Title:       title,
			FolderID:    sub.FolderID,
			UnreadCount: sub.UnreadCount,
		})
	}

	folders, err := s.repos.Subscription.ListFolders(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		count, err := s.repos.Subscription.FolderUnread(ctx, userID, folder.ID)
		if err != nil {
			return nil, err
		}
		summary.Folders = append(summary.Folders, FolderUnread{
			FolderID:    folder.ID,
			Name:        folder.Name,
			UnreadCount: count,
		})
	}
	return summary, nil
}

// FeedEntries lists the newest entries of a feed the user subscribes to
func (s *Service) FeedEntries(ctx context.Context, userID, feedID int64, limit int) ([]*domain.Entry, error) {
	sub, err := s.repos.Subscription.GetSubscription(ctx, userID, feedID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("user %d is not subscribed to feed %d", userID, feedID)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repos.Entry.GetEntries(ctx, feedID, limit)
}

// normalizeURL canonicalizes a user-supplied feed URL, defaulting the
// scheme to https
func normalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("feed url is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.ParseRequestURI(trimmed)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid feed url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Fragment = ""
	return u.String(), nil
}
