package fetch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ActivityPublisher/internal/config"
	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/scanner"
)

// fakeScanner replays canned pages keyed by page number.
type fakeScanner struct {
	name  string
	pages map[int][]domain.Entry
	errs  map[int]error
	calls int
}

func (f *fakeScanner) Name() string { return f.name }

func (f *fakeScanner) FetchPage(_ context.Context, _ scanner.Request, page int) ([]domain.Entry, error) {
	f.calls++
	if err, ok := f.errs[page]; ok {
		return nil, err
	}
	return f.pages[page], nil
}

func newTestFetcher(t *testing.T, sc scanner.PageScanner, now time.Time) *Fetcher {
	t.Helper()
	reg := scanner.NewRegistry()
	reg.Register(sc)
	feeds := []config.FeedConfig{{Name: "test", Scanner: sc.Name(), URL: "https://example.org/feed"}}
	f := NewFetcher(reg, feeds, config.FetchConfig{MaxPages: 5, StallLimit: 2}, nil)
	f.now = func() time.Time { return now }
	return f
}

func TestFetchNewDedupsOverlappingPages(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -10)

	sc := &fakeScanner{
		name: "fake",
		pages: map[int][]domain.Entry{
			0: {
				{ID: "urn:1", Text: "first post", Timestamp: "2h"},
				{ID: "urn:2", Text: "second post", Timestamp: "5h"},
			},
			1: {
				// urn:2 repeats across the page boundary.
				{ID: "urn:2", Text: "second post", Timestamp: "5h"},
				{ID: "urn:3", Text: "third post", Timestamp: "1d"},
			},
		},
	}

	items, err := newTestFetcher(t, sc, now).FetchNew(context.Background(), since)
	if err != nil {
		t.Fatalf("FetchNew returned error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 deduplicated items, got %d", len(items))
	}
	seen := map[string]int{}
	for _, item := range items {
		seen[item.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("item %s surfaced %d times", id, count)
		}
	}
}

func TestFetchNewAscendingAndStrictlyNewer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	sc := &fakeScanner{
		name: "fake",
		pages: map[int][]domain.Entry{
			0: {
				{ID: "urn:new", Text: "newest", Timestamp: "1h"},
				{ID: "urn:mid", Text: "middle", Timestamp: "6h"},
				{ID: "urn:old", Text: "older than cursor", Timestamp: "3d"},
			},
		},
	}

	items, err := newTestFetcher(t, sc, now).FetchNew(context.Background(), since)
	if err != nil {
		t.Fatalf("FetchNew returned error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items newer than cursor, got %d", len(items))
	}
	if items[0].ID != "urn:mid" || items[1].ID != "urn:new" {
		t.Fatalf("items not ascending by timestamp: %s, %s", items[0].ID, items[1].ID)
	}
	for _, item := range items {
		if !item.Timestamp.After(since) {
			t.Fatalf("item %s not strictly newer than cursor", item.ID)
		}
	}
	// The boundary entry stops pagination after its page.
	if sc.calls != 1 {
		t.Fatalf("expected scan to stop at the boundary page, got %d calls", sc.calls)
	}
}

func TestFetchNewSkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	sc := &fakeScanner{
		name: "fake",
		pages: map[int][]domain.Entry{
			0: {
				{ID: "urn:bad-ts", Text: "text", Timestamp: "whenever"},
				{ID: "urn:empty", Text: "   ", Timestamp: "2h"},
				{ID: "", Text: "no id", Timestamp: "2h"},
				{ID: "urn:good", Text: "keep me", Timestamp: "3h"},
			},
		},
	}

	items, err := newTestFetcher(t, sc, now).FetchNew(context.Background(), since)
	if err != nil {
		t.Fatalf("FetchNew returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "urn:good" {
		t.Fatalf("expected only urn:good to survive, got %+v", items)
	}
}

func TestFetchNewStallsTerminate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	// Every page repeats the same entry, so only page 0 yields a new id.
	repeat := []domain.Entry{{ID: "urn:1", Text: "post", Timestamp: "2h"}}
	sc := &fakeScanner{
		name:  "fake",
		pages: map[int][]domain.Entry{0: repeat, 1: repeat, 2: repeat, 3: repeat, 4: repeat},
	}

	items, err := newTestFetcher(t, sc, now).FetchNew(context.Background(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("FetchNew returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	// page 0 fresh, then two stalled pages hit the limit.
	if sc.calls != 3 {
		t.Fatalf("expected 3 page fetches before stall stop, got %d", sc.calls)
	}
}

func TestFetchNewPageErrorsYieldEmptyNotFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	sc := &fakeScanner{
		name: "fake",
		errs: map[int]error{
			0: fmt.Errorf("connection refused"),
			1: fmt.Errorf("connection refused"),
		},
	}

	items, err := newTestFetcher(t, sc, now).FetchNew(context.Background(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("fetch failure must not propagate, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty result, got %d items", len(items))
	}
}

func TestFetchNewUnknownScannerSkipsFeed(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	feeds := []config.FeedConfig{{Name: "broken", Scanner: "missing", URL: "https://example.org"}}
	f := NewFetcher(reg, feeds, config.FetchConfig{}, nil)

	items, err := f.FetchNew(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("FetchNew returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}
