package ports

import (
	"context"
	"time"

	"ActivityPublisher/internal/domain"
)

// CursorStore persists the high-water-mark timestamp between runs.
type CursorStore interface {
	Load() (time.Time, error)
	Save(ts time.Time) error
}

// ItemSource produces deduplicated items strictly newer than since,
// ascending by timestamp.
type ItemSource interface {
	FetchNew(ctx context.Context, since time.Time) ([]domain.Item, error)
}

// ClassificationOracle maps free text onto raw label strings.
type ClassificationOracle interface {
	Classify(ctx context.Context, text string) ([]string, error)
}

// TransformOracle produces a loosely typed object for one label.
type TransformOracle interface {
	Transform(ctx context.Context, label domain.Label, text string) (map[string]any, error)
}

// Classifier restricts oracle output to the closed vocabulary. The second
// return value carries recorded degradation errors and non-fatal notes;
// classification never fails hard.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.Label, []string)
}

// Transformer turns one item into candidate records for its label.
type Transformer interface {
	Label() domain.Label
	Transform(ctx context.Context, item domain.Item) ([]domain.Candidate, error)
}

// TransformerRegistry resolves the transformer bound to a label.
type TransformerRegistry interface {
	Resolve(label domain.Label) (Transformer, error)
}

// Validator checks one candidate against its label schema and either
// produces a typed record or a rejection reason.
type Validator interface {
	Validate(label domain.Label, candidate domain.Candidate) (domain.Record, error)
}

// Publisher posts one validated record to the label endpoint. Failures are
// reported through the outcome, never as a hard error.
type Publisher interface {
	Publish(ctx context.Context, label domain.Label, index int, record domain.Record) domain.PublishOutcome
}

// ResultArchive stores per-item results for operator review.
type ResultArchive interface {
	SaveResult(ctx context.Context, runID string, result domain.PipelineResult) error
}

// Scheduler controls when pipeline cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
