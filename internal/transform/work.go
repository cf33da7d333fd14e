package transform

import (
	"context"
	"fmt"
	"strings"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

type workTransformer struct {
	oracle ports.TransformOracle
}

func (t *workTransformer) Label() domain.Label { return domain.LabelWorkExperience }

// Transform extracts a work-experience object. An empty description gets a
// single bullet derived from title and company; a missing end date becomes
// "Present" when the item text announces a start or join.
func (t *workTransformer) Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error) {
	if t.oracle == nil {
		return nil, fmt.Errorf("transformation oracle not configured")
	}
	raw, err := t.oracle.Transform(ctx, domain.LabelWorkExperience, item.Text)
	if err != nil {
		return nil, fmt.Errorf("work-experience transform: %w", err)
	}

	c := domain.Candidate(raw)
	if description, ok := c["description"].([]any); !ok || len(description) == 0 {
		title := stringField(c, "title")
		if title == "" {
			title = "the role"
		}
		company := stringField(c, "company")
		if company == "" {
			company = "the company"
		}
		c["description"] = []any{fmt.Sprintf("Assumed %s at %s.", title, company)}
	}

	lower := strings.ToLower(item.Text)
	if stringField(c, "endDate") == "" && containsAny(lower, "start", "join") {
		c["endDate"] = "Present"
	}

	return []domain.Candidate{c}, nil
}
