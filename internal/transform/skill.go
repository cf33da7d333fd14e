package transform

import (
	"context"
	"fmt"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

type skillTransformer struct {
	oracle ports.TransformOracle
}

func (t *skillTransformer) Label() domain.Label { return domain.LabelSkill }

// Transform unpacks the oracle's skill_categories list into zero or more
// candidates, each validated independently downstream. A non-object entry
// becomes an empty candidate so it still surfaces as a validation rejection.
func (t *skillTransformer) Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error) {
	if t.oracle == nil {
		return nil, fmt.Errorf("transformation oracle not configured")
	}
	raw, err := t.oracle.Transform(ctx, domain.LabelSkill, item.Text)
	if err != nil {
		return nil, fmt.Errorf("skill transform: %w", err)
	}

	categories, ok := raw["skill_categories"].([]any)
	if !ok {
		return nil, fmt.Errorf("skill transform: response missing skill_categories list")
	}

	candidates := make([]domain.Candidate, 0, len(categories))
	for _, entry := range categories {
		obj, ok := entry.(map[string]any)
		if !ok {
			candidates = append(candidates, domain.Candidate{})
			continue
		}
		candidates = append(candidates, domain.Candidate(obj))
	}
	return candidates, nil
}
