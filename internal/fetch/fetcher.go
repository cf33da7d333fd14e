// Package fetch implements the incremental source fetcher: it walks the
// configured feeds page by page and keeps entries strictly newer than the
// cursor, deduplicated by id.
package fetch

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"ActivityPublisher/internal/config"
	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/feedtime"
	"ActivityPublisher/internal/ports"
	"ActivityPublisher/internal/scanner"
)

const (
	defaultMaxPages   = 15
	defaultStallLimit = 2
)

// Fetcher implements ports.ItemSource via registered scanner strategies.
type Fetcher struct {
	registry   *scanner.Registry
	feeds      []config.FeedConfig
	maxPages   int
	stallLimit int
	now        func() time.Time
	logger     *slog.Logger
}

var _ ports.ItemSource = (*Fetcher)(nil)

// NewFetcher wires the scanner registry with config-defined feeds.
func NewFetcher(reg *scanner.Registry, feeds []config.FeedConfig, bounds config.FetchConfig, log *slog.Logger) *Fetcher {
	maxPages := bounds.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	stallLimit := bounds.StallLimit
	if stallLimit <= 0 {
		stallLimit = defaultStallLimit
	}
	return &Fetcher{
		registry:   reg,
		feeds:      feeds,
		maxPages:   maxPages,
		stallLimit: stallLimit,
		now:        time.Now,
		logger:     log,
	}
}

// FetchNew runs the blocking scan loop on its own goroutine and awaits full
// completion, so fetching and per-item processing never interleave. Any
// failure mode degrades to an empty result, never a propagated error.
func (f *Fetcher) FetchNew(ctx context.Context, since time.Time) ([]domain.Item, error) {
	since = since.UTC()
	done := make(chan []domain.Item, 1)
	go func() {
		done <- f.scan(ctx, since)
	}()
	return <-done, nil
}

func (f *Fetcher) scan(ctx context.Context, since time.Time) []domain.Item {
	seen := map[string]struct{}{}
	var accepted []domain.Item

	for _, feed := range f.feeds {
		strategy, err := f.registry.Resolve(feed.Scanner)
		if err != nil {
			f.warn("skipping feed", "feed", feed.Name, "error", err)
			continue
		}

		req := scanner.Request{FeedName: feed.Name, URL: feed.URL, Options: feed.Options}
		boundary := false
		stalls := 0

		for page := 0; page < f.maxPages && !boundary && stalls < f.stallLimit; page++ {
			entries, err := strategy.FetchPage(ctx, req, page)
			if err != nil {
				f.warn("fetch page failed", "feed", feed.Name, "page", page, "error", err)
				stalls++
				continue
			}

			fresh := 0
			for _, entry := range entries {
				if entry.ID == "" {
					continue
				}
				if _, ok := seen[entry.ID]; ok {
					continue
				}
				seen[entry.ID] = struct{}{}
				fresh++

				ts, err := feedtime.Parse(entry.Timestamp, f.now())
				if err != nil {
					f.debug("skipping entry with unparsable timestamp", "feed", feed.Name, "id", entry.ID, "error", err)
					continue
				}
				if !ts.After(since) {
					// Content boundary: finish this page, then stop the feed.
					boundary = true
					continue
				}
				if strings.TrimSpace(entry.Text) == "" {
					f.debug("skipping entry with empty text", "feed", feed.Name, "id", entry.ID)
					continue
				}

				accepted = append(accepted, domain.Item{
					ID:        entry.ID,
					Text:      entry.Text,
					MediaURL:  entry.MediaURL,
					Timestamp: ts,
				})
			}

			if fresh == 0 {
				stalls++
			} else {
				stalls = 0
			}
		}

		f.debug("feed scanned", "feed", feed.Name, "boundary", boundary)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Timestamp.Before(accepted[j].Timestamp)
	})

	f.debug("scan finished", "items", len(accepted), "since", since)
	return accepted
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
