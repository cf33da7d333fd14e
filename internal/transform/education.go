package transform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

type educationTransformer struct {
	oracle ports.TransformOracle
	now    func() time.Time
}

func (t *educationTransformer) Label() domain.Label { return domain.LabelEducation }

// Transform extracts an education object. A missing end year defaults to the
// current year when the item text signals completion.
func (t *educationTransformer) Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error) {
	if t.oracle == nil {
		return nil, fmt.Errorf("transformation oracle not configured")
	}
	raw, err := t.oracle.Transform(ctx, domain.LabelEducation, item.Text)
	if err != nil {
		return nil, fmt.Errorf("education transform: %w", err)
	}

	c := domain.Candidate(raw)
	lower := strings.ToLower(item.Text)
	if stringField(c, "endYear") == "" && containsAny(lower, "completed", "finished", "earned", "received") {
		c["endYear"] = strconv.Itoa(t.now().UTC().Year())
	}

	return []domain.Candidate{c}, nil
}
