package domain

import "time"

// Entry is a raw unit yielded by a feed scanner before timestamp parsing.
// The timestamp is kept as the source's original text (relative or absolute).
type Entry struct {
	ID        string
	Text      string
	MediaURL  string
	Timestamp string
}

// Item is one fetched activity unit ready for classification. Items are
// created by the fetcher, consumed by the workflow engine, and never persisted.
type Item struct {
	ID        string
	Text      string
	MediaURL  string
	Timestamp time.Time
}
