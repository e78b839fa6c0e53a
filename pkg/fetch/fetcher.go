package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"feedloop/pkg/domain"
)

// maxBodySize caps the feed document size, some endpoints serve unbounded
// streams
const maxBodySize = 10 * 1024 * 1024

// Fetcher retrieves raw feed documents over HTTP. When the target URL
// serves an HTML page instead of a feed, it attempts autodiscovery through
// the page's alternate links.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Result is a successfully fetched raw feed document
type Result struct {
	Body    []byte
	FeedURL string // final URL the document came from, differs after autodiscovery
}

// NewFetcher creates a feed fetcher with a bounded request timeout
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves the raw document at feedURL. Failures are always typed
// *domain.FetchError so callers can classify without string matching.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*Result, error) {
	body, err := f.get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	if !looksLikeHTML(body) {
		return &Result{Body: body, FeedURL: feedURL}, nil
	}

	// an HTML page instead of a feed document, try autodiscovery
	altURL, err := discoverFeedURL(feedURL, body)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchAutodiscovery, URL: feedURL, Err: err}
	}
	lgr.Printf("[DEBUG] autodiscovered feed %s for %s", altURL, feedURL)

	altBody, err := f.get(ctx, altURL)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchAutodiscovery, URL: feedURL, Err: err}
	}
	if looksLikeHTML(altBody) {
		return nil, &domain.FetchError{Kind: domain.FetchAutodiscovery, URL: feedURL,
			Err: fmt.Errorf("alternate link %s is not a feed", altURL)}
	}

	return &Result{Body: altBody, FeedURL: altURL}, nil
}

// get performs one HTTP GET and classifies every failure mode
func (f *Fetcher) get(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchConnectionRefused, URL: feedURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{Kind: domain.FetchHTTPStatus, URL: feedURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, classifyTransportError(feedURL, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &domain.FetchError{Kind: domain.FetchEmptyResponse, URL: feedURL}
	}
	return body, nil
}

// classifyTransportError maps network failures onto the fetch error taxonomy
func classifyTransportError(feedURL string, err error) *domain.FetchError {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.FetchError{Kind: domain.FetchTimeout, URL: feedURL, Err: err}
	case errors.As(err, &dnsErr):
		return &domain.FetchError{Kind: domain.FetchDNSFailure, URL: feedURL, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &domain.FetchError{Kind: domain.FetchTimeout, URL: feedURL, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &domain.FetchError{Kind: domain.FetchConnectionRefused, URL: feedURL, Err: err}
	}
	// any other transport failure counts as a connection error
	return &domain.FetchError{Kind: domain.FetchConnectionRefused, URL: feedURL, Err: err}
}

// looksLikeHTML detects an HTML document by its leading bytes
func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(body)))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// discoverFeedURL scans an HTML page for an alternate RSS/Atom link and
// resolves it against the page URL
func discoverFeedURL(pageURL string, body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	var found string
	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		linkType, _ := sel.Attr("type")
		switch strings.ToLower(strings.TrimSpace(linkType)) {
		case "application/rss+xml", "application/atom+xml":
		default:
			return true // keep looking
		}
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})

	if found == "" {
		return "", fmt.Errorf("no feed link found in page")
	}
	return found, nil
}
