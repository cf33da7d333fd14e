package scanner

import (
	"context"
	"fmt"

	"ActivityPublisher/internal/domain"
)

// Request carries all parameters required to fetch one feed.
type Request struct {
	FeedName string
	URL      string
	Options  map[string]string
}

// PageScanner captures a single feed strategy (HTML activity page, RSS, etc.).
// FetchPage returns the raw entries of one page; page numbers start at zero
// and strategies without pagination return entries only for page zero.
type PageScanner interface {
	Name() string
	FetchPage(ctx context.Context, req Request, page int) ([]domain.Entry, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]PageScanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]PageScanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner PageScanner) {
	if r.scanners == nil {
		r.scanners = map[string]PageScanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (PageScanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
