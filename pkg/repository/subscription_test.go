package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/pkg/domain"
)

func TestSubscriptionRepository_Subscribe(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	userID := addUser(t, repos, "alice")

	ingest(t, repos, feed.ID, candidates(3)...)

	sub, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, userID, sub.UserID)
	assert.Equal(t, feed.ID, sub.FeedID)
	assert.Nil(t, sub.FolderID)
	assert.Equal(t, 3, sub.UnreadCount, "existing entries are backfilled unread")

	// subscribing again is a no-op
	again, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, again.ID)
	assert.Equal(t, 3, again.UnreadCount)

	count, err := repos.Subscription.CountSubscribers(context.Background(), feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriptionRepository_Subscribe_WithFolder(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	userID := addUser(t, repos, "alice")

	folder, err := repos.Subscription.GetOrCreateFolder(context.Background(), userID, "tech")
	require.NoError(t, err)

	sub, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, sub.FolderID)
	assert.Equal(t, folder.ID, *sub.FolderID)
}

func TestSubscriptionRepository_Unsubscribe(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	alice := addUser(t, repos, "alice")
	bob := addUser(t, repos, "bob")

	_, err := repos.Subscription.Subscribe(context.Background(), alice, feed.ID, nil)
	require.NoError(t, err)
	_, err = repos.Subscription.Subscribe(context.Background(), bob, feed.ID, nil)
	require.NoError(t, err)
	ingest(t, repos, feed.ID, candidates(2)...)

	// first unsubscribe removes alice's states but keeps the feed
	feedDeleted, err := repos.Subscription.Unsubscribe(context.Background(), alice, feed.ID)
	require.NoError(t, err)
	assert.False(t, feedDeleted)

	var aliceStates int
	require.NoError(t, repos.DB.GetContext(context.Background(), &aliceStates,
		"SELECT COUNT(*) FROM entry_states WHERE user_id = ?", alice))
	assert.Zero(t, aliceStates, "unsubscribe drops the user's entry states")

	unread, err := repos.Subscription.FeedUnread(context.Background(), bob, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread, "the other subscriber is untouched")

	// last unsubscribe destroys the feed
	feedDeleted, err = repos.Subscription.Unsubscribe(context.Background(), bob, feed.ID)
	require.NoError(t, err)
	assert.True(t, feedDeleted)

	gone, err := repos.Feed.GetFeed(context.Background(), feed.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var entries int
	require.NoError(t, repos.DB.GetContext(context.Background(), &entries, "SELECT COUNT(*) FROM entries"))
	assert.Zero(t, entries)
}

func TestSubscriptionRepository_Unsubscribe_PrunesEmptyFolder(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	userID := addUser(t, repos, "alice")

	folder, err := repos.Subscription.GetOrCreateFolder(context.Background(), userID, "solo")
	require.NoError(t, err)
	_, err = repos.Subscription.Subscribe(context.Background(), userID, feed.ID, &folder.ID)
	require.NoError(t, err)

	_, err = repos.Subscription.Unsubscribe(context.Background(), userID, feed.ID)
	require.NoError(t, err)

	folders, err := repos.Subscription.ListFolders(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, folders, "a folder with no subscriptions left is deleted")
}

func TestSubscriptionRepository_MarkEntry(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	userID := addUser(t, repos, "alice")
	_, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)
	ingest(t, repos, feed.ID, candidates(3)...)

	entries, err := repos.Entry.GetEntries(context.Background(), feed.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NoError(t, repos.Subscription.MarkEntry(context.Background(), userID, entries[0].ID, true))

	sub, err := repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.UnreadCount, "the cached counter follows the state change")

	// marking read twice stays at the same count
	require.NoError(t, repos.Subscription.MarkEntry(context.Background(), userID, entries[0].ID, true))
	sub, err = repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.UnreadCount)

	// and back to unread
	require.NoError(t, repos.Subscription.MarkEntry(context.Background(), userID, entries[0].ID, false))
	sub, err = repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.UnreadCount)
}

func TestSubscriptionRepository_MarkFeedRead(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	other := addFeed(t, repos, "https://other.example.com/feed")
	userID := addUser(t, repos, "alice")

	_, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)
	_, err = repos.Subscription.Subscribe(context.Background(), userID, other.ID, nil)
	require.NoError(t, err)
	ingest(t, repos, feed.ID, candidates(3)...)
	ingest(t, repos, other.ID, domain.CandidateEntry{GUID: "other-1", Link: "https://other.example.com/1"})

	require.NoError(t, repos.Subscription.MarkFeedRead(context.Background(), userID, feed.ID))

	unread, err := repos.Subscription.FeedUnread(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	total, err := repos.Subscription.TotalUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "the other feed keeps its unread entry")
}

func TestSubscriptionRepository_UnreadCounts(t *testing.T) {
	repos := setupTestRepos(t)
	userID := addUser(t, repos, "alice")

	feedA := addFeed(t, repos, "https://a.example.com/feed")
	feedB := addFeed(t, repos, "https://b.example.com/feed")

	folder, err := repos.Subscription.GetOrCreateFolder(context.Background(), userID, "news")
	require.NoError(t, err)

	_, err = repos.Subscription.Subscribe(context.Background(), userID, feedA.ID, &folder.ID)
	require.NoError(t, err)
	_, err = repos.Subscription.Subscribe(context.Background(), userID, feedB.ID, nil)
	require.NoError(t, err)

	ingest(t, repos, feedA.ID, candidates(2)...)
	ingest(t, repos, feedB.ID, domain.CandidateEntry{GUID: "b-1", Link: "https://b.example.com/1"})

	feedUnread, err := repos.Subscription.FeedUnread(context.Background(), userID, feedA.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, feedUnread)

	folderUnread, err := repos.Subscription.FolderUnread(context.Background(), userID, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, folderUnread, "folder counts cover only its feeds")

	total, err := repos.Subscription.TotalUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestSubscriptionRepository_RefreshUnreadCount(t *testing.T) {
	repos := setupTestRepos(t)
	feed := addFeed(t, repos, "https://example.com/feed")
	userID := addUser(t, repos, "alice")
	_, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)
	ingest(t, repos, feed.ID, candidates(2)...)

	// corrupt the cached counter, then repair it
	_, err = repos.DB.ExecContext(context.Background(),
		"UPDATE subscriptions SET unread_count = 99 WHERE user_id = ? AND feed_id = ?", userID, feed.ID)
	require.NoError(t, err)

	require.NoError(t, repos.Subscription.RefreshUnreadCount(context.Background(), userID, feed.ID))

	sub, err := repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.UnreadCount)
}

func TestSubscriptionRepository_Folders(t *testing.T) {
	repos := setupTestRepos(t)
	userID := addUser(t, repos, "alice")
	feed := addFeed(t, repos, "https://example.com/feed")
	_, err := repos.Subscription.Subscribe(context.Background(), userID, feed.ID, nil)
	require.NoError(t, err)

	folder, err := repos.Subscription.GetOrCreateFolder(context.Background(), userID, "tech")
	require.NoError(t, err)
	require.NotZero(t, folder.ID)

	// same name returns the same folder
	again, err := repos.Subscription.GetOrCreateFolder(context.Background(), userID, "tech")
	require.NoError(t, err)
	assert.Equal(t, folder.ID, again.ID)

	// a different user gets their own folder with the same name
	bob := addUser(t, repos, "bob")
	bobs, err := repos.Subscription.GetOrCreateFolder(context.Background(), bob, "tech")
	require.NoError(t, err)
	assert.NotEqual(t, folder.ID, bobs.ID)

	// move into the folder and out again
	require.NoError(t, repos.Subscription.MoveToFolder(context.Background(), userID, feed.ID, &folder.ID))
	sub, err := repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, sub.FolderID)
	assert.Equal(t, folder.ID, *sub.FolderID)

	require.NoError(t, repos.Subscription.MoveToFolder(context.Background(), userID, feed.ID, nil))
	sub, err = repos.Subscription.GetSubscription(context.Background(), userID, feed.ID)
	require.NoError(t, err)
	assert.Nil(t, sub.FolderID)

	folders, err := repos.Subscription.ListFolders(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, folders, "the emptied folder is pruned on move")
}

func TestSubscriptionRepository_MoveToFolder_NotSubscribed(t *testing.T) {
	repos := setupTestRepos(t)
	userID := addUser(t, repos, "alice")

	err := repos.Subscription.MoveToFolder(context.Background(), userID, 999, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubscriptionRepository_ListSubscriptions(t *testing.T) {
	repos := setupTestRepos(t)
	userID := addUser(t, repos, "alice")

	feedA := addFeed(t, repos, "https://a.example.com/feed")
	feedB := addFeed(t, repos, "https://b.example.com/feed")
	_, err := repos.Subscription.Subscribe(context.Background(), userID, feedA.ID, nil)
	require.NoError(t, err)
	_, err = repos.Subscription.Subscribe(context.Background(), userID, feedB.ID, nil)
	require.NoError(t, err)

	subs, err := repos.Subscription.ListSubscriptions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, feedA.ID, subs[0].FeedID)
	assert.Equal(t, feedB.ID, subs[1].FeedID)
}
