package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// EngineDeps wires the per-item workflow stages.
type EngineDeps struct {
	Classifier ports.Classifier
	Registry   ports.TransformerRegistry
	Validator  ports.Validator
	Publisher  ports.Publisher
	Logger     *slog.Logger
}

// Engine runs the per-item state machine: classify, dispatch one transform
// branch per label, join, publish. Every stage failure degrades to recorded
// error strings; the machine always reaches its terminal state.
type Engine struct {
	classifier ports.Classifier
	registry   ports.TransformerRegistry
	validator  ports.Validator
	publisher  ports.Publisher
	logger     *slog.Logger
}

// NewEngine checks that all required collaborators are present; a missing
// one is the only fatal condition in the whole workflow.
func NewEngine(deps EngineDeps) (*Engine, error) {
	if deps.Classifier == nil {
		return nil, fmt.Errorf("engine requires a classifier")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("engine requires a transformer registry")
	}
	if deps.Validator == nil {
		return nil, fmt.Errorf("engine requires a validator")
	}
	if deps.Publisher == nil {
		return nil, fmt.Errorf("engine requires a publisher")
	}
	return &Engine{
		classifier: deps.Classifier,
		registry:   deps.Registry,
		validator:  deps.Validator,
		publisher:  deps.Publisher,
		logger:     deps.Logger,
	}, nil
}

type branchResult struct {
	label   domain.Label
	records []domain.Record
	errors  []string
}

// ProcessItem runs one item through the full machine and returns its result.
// Each call owns an independent result; nothing is shared across items.
func (e *Engine) ProcessItem(ctx context.Context, item domain.Item) domain.PipelineResult {
	result := domain.NewPipelineResult(item.ID)

	labels, notes := e.classifier.Classify(ctx, item.Text)
	result.Classifications = labels
	result.Errors = append(result.Errors, notes...)
	e.debug("item classified", "item_id", item.ID, "labels", labels)

	if len(labels) > 0 {
		// Dispatch one branch per label; the barrier below waits for exactly
		// that many terminal reports before publishing may begin.
		dispatched := len(labels)
		reports := make(chan branchResult, dispatched)
		for _, label := range labels {
			go func(label domain.Label) {
				reports <- e.runBranch(ctx, label, item)
			}(label)
		}

		byLabel := make(map[domain.Label]branchResult, dispatched)
		for i := 0; i < dispatched; i++ {
			br := <-reports
			byLabel[br.label] = br
		}

		// Merge in classification order so branch scheduling never shows in
		// the aggregated result.
		for _, label := range labels {
			br := byLabel[label]
			result.Errors = append(result.Errors, br.errors...)
			if len(br.records) > 0 {
				result.Records[label] = br.records
			}
		}
	}

	e.publish(ctx, &result)
	return result
}

// runBranch is the TRANSFORM stage for one label: transform, then validate
// each candidate independently. A failure here never touches sibling
// branches.
func (e *Engine) runBranch(ctx context.Context, label domain.Label, item domain.Item) branchResult {
	br := branchResult{label: label}

	transformer, err := e.registry.Resolve(label)
	if err != nil {
		br.errors = append(br.errors, fmt.Sprintf("transform %s: %v", label, err))
		return br
	}

	candidates, err := transformer.Transform(ctx, item)
	if err != nil {
		br.errors = append(br.errors, fmt.Sprintf("transform %s: %v", label, err))
		return br
	}

	for i, candidate := range candidates {
		record, err := e.validator.Validate(label, candidate)
		if err != nil {
			br.errors = append(br.errors, fmt.Sprintf("validate %s candidate %d: %v", label, i+1, err))
			continue
		}
		br.records = append(br.records, record)
	}
	return br
}

// publish walks labels in classification order and records in index order,
// one outbound call per validated record. A failed call never aborts
// siblings.
func (e *Engine) publish(ctx context.Context, result *domain.PipelineResult) {
	for _, label := range result.Classifications {
		for i, record := range result.Records[label] {
			outcome := e.publisher.Publish(ctx, label, i, record)
			result.Outcomes[label] = append(result.Outcomes[label], outcome)
			if outcome.Class != domain.OutcomeOK {
				result.Errors = append(result.Errors, publishError(outcome))
			}
		}
	}
}

func publishError(outcome domain.PublishOutcome) string {
	if outcome.Class == domain.OutcomeTransportError {
		return fmt.Sprintf("publish %s record %d: %s", outcome.Label, outcome.Index+1, outcome.Detail)
	}
	return fmt.Sprintf("publish %s record %d: status %d - %s", outcome.Label, outcome.Index+1, outcome.Status, outcome.Detail)
}

func (e *Engine) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
