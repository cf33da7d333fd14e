package transform

import (
	"context"
	"fmt"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

type achievementTransformer struct {
	oracle ports.TransformOracle
	now    func() time.Time
}

func (t *achievementTransformer) Label() domain.Label { return domain.LabelAchievement }

// Transform extracts an achievement object; a missing date becomes today.
func (t *achievementTransformer) Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error) {
	if t.oracle == nil {
		return nil, fmt.Errorf("transformation oracle not configured")
	}
	raw, err := t.oracle.Transform(ctx, domain.LabelAchievement, item.Text)
	if err != nil {
		return nil, fmt.Errorf("achievement transform: %w", err)
	}

	c := domain.Candidate(raw)
	if stringField(c, "date") == "" {
		c["date"] = isoDate(t.now())
	}

	return []domain.Candidate{c}, nil
}
