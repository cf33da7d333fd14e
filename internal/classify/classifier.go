// Package classify restricts oracle classifications to the closed vocabulary.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// Classifier wraps the classification oracle with defensive filtering.
// Every failure degrades to an empty label set plus a recorded error.
type Classifier struct {
	oracle ports.ClassificationOracle
	logger *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

// NewClassifier wires the oracle; a nil oracle degrades every call.
func NewClassifier(oracle ports.ClassificationOracle, log *slog.Logger) *Classifier {
	return &Classifier{oracle: oracle, logger: log}
}

// Classify maps item text onto vocabulary labels. Labels outside the
// vocabulary are filtered out and the filtering is recorded as a note;
// duplicates collapse preserving first-seen order.
func (c *Classifier) Classify(ctx context.Context, text string) ([]domain.Label, []string) {
	if strings.TrimSpace(text) == "" {
		return nil, []string{"classification error: empty item text"}
	}
	if c.oracle == nil {
		return nil, []string{"classification error: oracle not configured"}
	}

	raw, err := c.oracle.Classify(ctx, text)
	if err != nil {
		c.warn("classification oracle failed", "error", err)
		return nil, []string{fmt.Sprintf("classification error: %v", err)}
	}

	var labels []domain.Label
	var dropped []string
	seen := map[domain.Label]struct{}{}
	for _, value := range raw {
		label := domain.Label(value)
		if !domain.KnownLabel(label) {
			dropped = append(dropped, value)
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	var notes []string
	if len(dropped) > 0 {
		c.warn("oracle returned unknown labels", "dropped", dropped)
		notes = append(notes, fmt.Sprintf("classification note: dropped unknown labels %s", strings.Join(dropped, ", ")))
	}
	return labels, notes
}

func (c *Classifier) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
