package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/pkg/domain"
)

const rssDoc = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item><title>First</title><link>https://example.com/1</link></item>
</channel></rss>`

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "feedloop/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssDoc))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, res.FeedURL)
	assert.Contains(t, string(res.Body), "Test Feed")
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusGone, fetchErr.Status)
}

func TestFetcher_Fetch_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchEmptyResponse, fetchErr.Kind)
}

func TestFetcher_Fetch_Autodiscovery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><head>
			<link rel="alternate" type="application/rss+xml" href="/feed.xml">
			</head><body>a blog</body></html>`))
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssDoc))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/feed.xml", res.FeedURL, "relative alternate link resolves against the page")
	assert.Contains(t, string(res.Body), "Test Feed")
}

func TestFetcher_Fetch_AutodiscoveryNoLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>no feed here</title></head></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchAutodiscovery, fetchErr.Kind)
}

func TestFetcher_Fetch_AutodiscoveryLeadsToHTML(t *testing.T) {
	mux := http.NewServeMux()
	page := `<html><head><link rel="alternate" type="application/atom+xml" href="/also-html"></head></html>`
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(5*time.Second, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchAutodiscovery, fetchErr.Kind)
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	f := NewFetcher(100*time.Millisecond, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchTimeout, fetchErr.Kind)
}

func TestFetcher_Fetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	f := NewFetcher(time.Second, "feedloop/1.0")
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.FetchConnectionRefused, fetchErr.Kind)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML([]byte("<!DOCTYPE html><html></html>")))
	assert.True(t, looksLikeHTML([]byte("  \n<html lang=\"en\">")))
	assert.False(t, looksLikeHTML([]byte(rssDoc)))
	assert.False(t, looksLikeHTML([]byte(`<?xml version="1.0"?><feed/>`)))
}
