package transform

import (
	"context"
	"fmt"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

const defaultCoverImage = "/default-cover.jpg"

type blogTransformer struct {
	oracle ports.TransformOracle
	now    func() time.Time
}

func (t *blogTransformer) Label() domain.Label { return domain.LabelBlog }

// Transform asks the oracle for a blog object and fills the deterministic
// defaults: today's date, reading time from word count, slug from title,
// cover image from the item media, excerpt from content, empty lists.
func (t *blogTransformer) Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error) {
	if t.oracle == nil {
		return nil, fmt.Errorf("transformation oracle not configured")
	}
	raw, err := t.oracle.Transform(ctx, domain.LabelBlog, item.Text)
	if err != nil {
		return nil, fmt.Errorf("blog transform: %w", err)
	}

	c := domain.Candidate(raw)
	if stringField(c, "date") == "" {
		c["date"] = isoDate(t.now())
	}
	content := stringField(c, "content")
	if stringField(c, "readingTime") == "" {
		c["readingTime"] = estimateReadingTime(content)
	}
	if stringField(c, "slug") == "" {
		c["slug"] = makeSlug(stringField(c, "title"), t.now())
	}
	if stringField(c, "coverImage") == "" {
		if item.MediaURL != "" {
			c["coverImage"] = item.MediaURL
		} else {
			c["coverImage"] = defaultCoverImage
		}
	}
	if stringField(c, "excerpt") == "" && content != "" {
		c["excerpt"] = makeExcerpt(content)
	}
	if _, ok := c["tags"]; !ok {
		c["tags"] = []any{}
	}
	if _, ok := c["relatedPosts"]; !ok {
		c["relatedPosts"] = []any{}
	}

	return []domain.Candidate{c}, nil
}
