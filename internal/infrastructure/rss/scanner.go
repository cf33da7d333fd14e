// Package rss adapts RSS/Atom feeds as an alternate source strategy.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/scanner"
)

// Scanner yields feed items as raw entries. Feeds are not paginated, so only
// page zero produces entries.
type Scanner struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ scanner.PageScanner = (*Scanner)(nil)

// NewScanner builds a gofeed-backed scanner; a nil client gets a 20s-timeout
// default so a stalled feed cannot hang the run.
func NewScanner(client *http.Client, logger *slog.Logger) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	return &Scanner{parser: parser, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "rss"
}

// FetchPage parses the feed once; pages past zero are empty.
func (s *Scanner) FetchPage(ctx context.Context, req scanner.Request, page int) ([]domain.Entry, error) {
	if page > 0 {
		return nil, nil
	}

	feed, err := s.parser.ParseURLWithContext(req.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", req.FeedName, err)
	}

	entries := make([]domain.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := domain.Entry{ID: item.GUID}
		if entry.ID == "" {
			entry.ID = item.Link
		}

		text := item.Description
		if text == "" {
			text = item.Content
		}
		if item.Title != "" {
			if text != "" {
				text = item.Title + "\n\n" + text
			} else {
				text = item.Title
			}
		}
		entry.Text = text

		if item.PublishedParsed != nil {
			entry.Timestamp = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else {
			entry.Timestamp = item.Published
		}

		if item.Image != nil {
			entry.MediaURL = item.Image.URL
		} else if len(item.Enclosures) > 0 {
			entry.MediaURL = item.Enclosures[0].URL
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
