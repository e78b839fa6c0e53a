package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/pkg/domain"
	"feedloop/pkg/service"
	"feedloop/server/mocks"
)

func testServer(t *testing.T, reader *mocks.ReaderMock) *httptest.Server {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "127.0.0.1:0", 5 * time.Second },
	}
	srv := New(cfg, reader, "test", false)
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Status(t *testing.T) {
	ts := testServer(t, &mocks.ReaderMock{})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestServer_Ping(t *testing.T) {
	ts := testServer(t, &mocks.ReaderMock{})

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RefreshFeed(t *testing.T) {
	reader := &mocks.ReaderMock{
		RefreshFeedFunc: func(ctx context.Context, feedID int64) (domain.RefreshResult, error) {
			return domain.RefreshResult{
				FeedID:       feedID,
				Outcome:      domain.OutcomeNewEntries,
				EntriesAdded: 3,
				Interval:     3240,
				Available:    true,
			}, nil
		},
	}
	ts := testServer(t, reader)

	resp, err := http.Post(ts.URL+"/api/v1/feeds/42/refresh", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body refreshResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(42), body.FeedID)
	assert.Equal(t, "new_entries", body.Outcome)
	assert.Equal(t, 3, body.EntriesAdded)
	assert.Equal(t, 3240, body.Interval)

	require.Len(t, reader.RefreshFeedCalls(), 1)
	assert.Equal(t, int64(42), reader.RefreshFeedCalls()[0].FeedID)
}

func TestServer_RefreshFeed_BadID(t *testing.T) {
	ts := testServer(t, &mocks.ReaderMock{})

	resp, err := http.Post(ts.URL+"/api/v1/feeds/abc/refresh", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Subscribe(t *testing.T) {
	folderID := int64(3)
	reader := &mocks.ReaderMock{
		SubscribeFunc: func(ctx context.Context, userID int64, rawURL, folderName string) (*domain.Subscription, error) {
			return &domain.Subscription{ID: 1, UserID: userID, FeedID: 9, FolderID: &folderID, UnreadCount: 5}, nil
		},
	}
	ts := testServer(t, reader)

	resp, err := http.Post(ts.URL+"/api/v1/users/7/subscriptions", "application/json",
		strings.NewReader(`{"url":"https://example.com/feed","folder":"tech"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sub domain.Subscription
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sub))
	assert.Equal(t, int64(9), sub.FeedID)
	assert.Equal(t, 5, sub.UnreadCount)

	require.Len(t, reader.SubscribeCalls(), 1)
	call := reader.SubscribeCalls()[0]
	assert.Equal(t, int64(7), call.UserID)
	assert.Equal(t, "https://example.com/feed", call.RawURL)
	assert.Equal(t, "tech", call.FolderName)
}

func TestServer_Subscribe_Errors(t *testing.T) {
	reader := &mocks.ReaderMock{
		SubscribeFunc: func(ctx context.Context, userID int64, rawURL, folderName string) (*domain.Subscription, error) {
			return nil, errors.New("feed is not usable")
		},
	}
	ts := testServer(t, reader)

	// reader rejection
	resp, err := http.Post(ts.URL+"/api/v1/users/7/subscriptions", "application/json",
		strings.NewReader(`{"url":"https://down.example.com/feed"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// malformed body never reaches the reader
	resp2, err := http.Post(ts.URL+"/api/v1/users/7/subscriptions", "application/json",
		strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Len(t, reader.SubscribeCalls(), 1)
}

func TestServer_Unsubscribe(t *testing.T) {
	reader := &mocks.ReaderMock{
		UnsubscribeFunc: func(ctx context.Context, userID, feedID int64) error { return nil },
	}
	ts := testServer(t, reader)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/users/7/subscriptions/9", http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Len(t, reader.UnsubscribeCalls(), 1)
	assert.Equal(t, int64(7), reader.UnsubscribeCalls()[0].UserID)
	assert.Equal(t, int64(9), reader.UnsubscribeCalls()[0].FeedID)
}

func TestServer_Unread(t *testing.T) {
	reader := &mocks.ReaderMock{
		UnreadFunc: func(ctx context.Context, userID int64) (*service.UnreadSummary, error) {
			return &service.UnreadSummary{
				Total: 12,
				Subscriptions: []service.SubscriptionUnread{
					{FeedID: 1, Title: "Feed One", UnreadCount: 7},
					{FeedID: 2, Title: "Feed Two", UnreadCount: 5},
				},
				Folders: []service.FolderUnread{{FolderID: 1, Name: "tech", UnreadCount: 12}},
			}, nil
		},
	}
	ts := testServer(t, reader)

	resp, err := http.Get(ts.URL + "/api/v1/users/7/unread")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary service.UnreadSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 12, summary.Total)
	assert.Len(t, summary.Subscriptions, 2)
	require.Len(t, summary.Folders, 1)
	assert.Equal(t, "tech", summary.Folders[0].Name)
}

func TestServer_FeedEntries(t *testing.T) {
	reader := &mocks.ReaderMock{
		FeedEntriesFunc: func(ctx context.Context, userID, feedID int64, limit int) ([]*domain.Entry, error) {
			return []*domain.Entry{{ID: 1, FeedID: feedID, Title: "one"}}, nil
		},
	}
	ts := testServer(t, reader)

	resp, err := http.Get(ts.URL + "/api/v1/users/7/feeds/9/entries?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, reader.FeedEntriesCalls(), 1)
	assert.Equal(t, 10, reader.FeedEntriesCalls()[0].Limit)

	// bad limit rejected before the reader
	resp2, err := http.Get(ts.URL + "/api/v1/users/7/feeds/9/entries?limit=nope")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Len(t, reader.FeedEntriesCalls(), 1)
}

func TestServer_MarkEntry(t *testing.T) {
	reader := &mocks.ReaderMock{
		MarkEntryFunc: func(ctx context.Context, userID, entryID int64, read bool) error { return nil },
	}
	ts := testServer(t, reader)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/users/7/entries/11/read",
		strings.NewReader(`{"read":true}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Len(t, reader.MarkEntryCalls(), 1)
	call := reader.MarkEntryCalls()[0]
	assert.Equal(t, int64(11), call.EntryID)
	assert.True(t, call.Read)
}

func TestServer_MarkFeedRead(t *testing.T) {
	reader := &mocks.ReaderMock{
		MarkFeedReadFunc: func(ctx context.Context, userID, feedID int64) error { return nil },
	}
	ts := testServer(t, reader)

	resp, err := http.Post(ts.URL+"/api/v1/users/7/feeds/9/read", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Len(t, reader.MarkFeedReadCalls(), 1)
}

func TestServer_MoveFolder(t *testing.T) {
	reader := &mocks.ReaderMock{
		MoveToFolderFunc: func(ctx context.Context, userID, feedID int64, folderName string) error { return nil },
	}
	ts := testServer(t, reader)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/users/7/subscriptions/9/folder",
		strings.NewReader(`{"folder":"news"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Len(t, reader.MoveToFolderCalls(), 1)
	assert.Equal(t, "news", reader.MoveToFolderCalls()[0].FolderName)
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "127.0.0.1:0", 5 * time.Second },
	}
	srv := New(cfg, &mocks.ReaderMock{}, "test", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
