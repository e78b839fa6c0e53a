package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"feedloop/pkg/domain"
)

// Parser turns raw feed documents into candidate entries. Summaries are
// sanitized before they ever reach storage, feed content is untrusted HTML.
type Parser struct {
	sanitizer *bluemonday.Policy
}

// NewParser creates a feed parser
func NewParser() *Parser {
	return &Parser{sanitizer: bluemonday.UGCPolicy()}
}

// Parse converts a raw document into a ParsedFeed. Malformed documents
// return *domain.ParseError.
func (p *Parser) Parse(raw []byte) (*domain.ParsedFeed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	result := &domain.ParsedFeed{
		Title:   strings.TrimSpace(feed.Title),
		SiteURL: strings.TrimSpace(feed.Link),
		Entries: make([]domain.CandidateEntry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		cand := domain.CandidateEntry{
			Link:    strings.TrimSpace(item.Link),
			Title:   strings.TrimSpace(item.Title),
			Summary: p.summary(item),
		}

		// guid falls back to the link, then to a title-derived value, so
		// every candidate has a stable identity
		switch {
		case strings.TrimSpace(item.GUID) != "":
			cand.GUID = strings.TrimSpace(item.GUID)
		case cand.Link != "":
			cand.GUID = cand.Link
		default:
			cand.GUID = fmt.Sprintf("%s-%s", result.Title, cand.Title)
		}

		if item.Author != nil {
			cand.Author = item.Author.Name
		}

		if item.PublishedParsed != nil {
			cand.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			cand.Published = *item.UpdatedParsed
		}

		result.Entries = append(result.Entries, cand)
	}

	return result, nil
}

// summary picks the item description, falling back to content, sanitized
func (p *Parser) summary(item *gofeed.Item) string {
	text := item.Description
	if strings.TrimSpace(text) == "" {
		text = item.Content
	}
	return strings.TrimSpace(p.sanitizer.Sanitize(text))
}
