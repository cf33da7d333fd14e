// Package feedpage scans a paginated HTML activity feed with configurable
// selectors.
package feedpage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/scanner"
)

// Option keys understood by the activity-page scanner. Selectors default to
// the values below and can be overridden per feed in config.
const (
	optionEntrySelector     = "entrySelector"
	optionIDAttr            = "idAttr"
	optionTimestampSelector = "timestampSelector"
	optionTextSelector      = "textSelector"
	optionMediaSelector     = "mediaSelector"
	optionPageParam         = "pageParam"
	optionSessionCookie     = "sessionCookie"
)

const (
	defaultEntrySelector     = "div[data-urn]"
	defaultIDAttr            = "data-urn"
	defaultTimestampSelector = ".entry-timestamp"
	defaultTextSelector      = ".entry-text"
	defaultMediaSelector     = "img"
	defaultPageParam         = "page"
)

// Scanner fetches one page of an authenticated HTML activity feed.
type Scanner struct {
	client *http.Client
	logger *slog.Logger
}

var _ scanner.PageScanner = (*Scanner)(nil)

// NewScanner wires an HTTP client; nil gets a 20s-timeout default.
func NewScanner(client *http.Client, logger *slog.Logger) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scanner{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "feedpage"
}

// FetchPage downloads one page of the feed and extracts its raw entries.
func (s *Scanner) FetchPage(ctx context.Context, req scanner.Request, page int) ([]domain.Entry, error) {
	pageURL, err := buildPageURL(req.URL, option(req.Options, optionPageParam, defaultPageParam), page)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", req.FeedName, err)
	}

	doc, err := s.fetchDocument(ctx, pageURL, req.Options)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", req.FeedName, err)
	}

	return extractEntries(doc, req.Options), nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string, options map[string]string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ActivityPublisher/1.0")
	if cookie := options[optionSessionCookie]; cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func extractEntries(doc *goquery.Document, options map[string]string) []domain.Entry {
	entrySelector := option(options, optionEntrySelector, defaultEntrySelector)
	idAttr := option(options, optionIDAttr, defaultIDAttr)
	timestampSelector := option(options, optionTimestampSelector, defaultTimestampSelector)
	textSelector := option(options, optionTextSelector, defaultTextSelector)
	mediaSelector := option(options, optionMediaSelector, defaultMediaSelector)

	var entries []domain.Entry
	doc.Find(entrySelector).Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr(idAttr)
		entry := domain.Entry{
			ID:        strings.TrimSpace(id),
			Text:      strings.TrimSpace(sel.Find(textSelector).First().Text()),
			Timestamp: strings.TrimSpace(sel.Find(timestampSelector).First().Text()),
		}
		if src, ok := sel.Find(mediaSelector).First().Attr("src"); ok {
			entry.MediaURL = strings.TrimSpace(src)
		}
		entries = append(entries, entry)
	})
	return entries
}

func buildPageURL(base, pageParam string, page int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid feed url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set(pageParam, strconv.Itoa(page))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func option(options map[string]string, key, fallback string) string {
	if v, ok := options[key]; ok && v != "" {
		return v
	}
	return fallback
}
