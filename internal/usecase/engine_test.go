package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

type stubClassifier struct {
	labels []domain.Label
	notes  []string
}

func (s stubClassifier) Classify(context.Context, string) ([]domain.Label, []string) {
	return s.labels, s.notes
}

type stubTransformer struct {
	label      domain.Label
	candidates []domain.Candidate
	err        error
	delay      time.Duration
}

func (s stubTransformer) Label() domain.Label { return s.label }

func (s stubTransformer) Transform(context.Context, domain.Item) ([]domain.Candidate, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.candidates, s.err
}

type stubRegistry map[domain.Label]ports.Transformer

func (s stubRegistry) Resolve(label domain.Label) (ports.Transformer, error) {
	tr, ok := s[label]
	if !ok {
		return nil, fmt.Errorf("no transformer registered for label %s", label)
	}
	return tr, nil
}

// stubValidator rejects any candidate carrying an "invalid" key and wraps the
// rest into a minimal typed record for the label.
type stubValidator struct{}

func (stubValidator) Validate(label domain.Label, candidate domain.Candidate) (domain.Record, error) {
	if reason, ok := candidate["invalid"]; ok {
		return nil, fmt.Errorf("schema violation: %v", reason)
	}
	switch label {
	case domain.LabelBlog:
		return domain.BlogPost{Title: fmt.Sprint(candidate["title"])}, nil
	case domain.LabelWorkExperience:
		return domain.WorkExperience{Title: fmt.Sprint(candidate["title"])}, nil
	case domain.LabelEducation:
		return domain.Education{Degree: fmt.Sprint(candidate["degree"])}, nil
	case domain.LabelAchievement:
		return domain.Achievement{Title: fmt.Sprint(candidate["title"])}, nil
	default:
		return domain.SkillCategory{Name: fmt.Sprint(candidate["name"])}, nil
	}
}

type publishCall struct {
	label domain.Label
	index int
}

// stubPublisher replays canned outcomes keyed by label and index; unkeyed
// calls succeed with a 201.
type stubPublisher struct {
	failures map[string]domain.PublishOutcome
	calls    []publishCall
}

func failureKey(label domain.Label, index int) string {
	return fmt.Sprintf("%s/%d", label, index)
}

func (s *stubPublisher) Publish(_ context.Context, label domain.Label, index int, _ domain.Record) domain.PublishOutcome {
	s.calls = append(s.calls, publishCall{label: label, index: index})
	if outcome, ok := s.failures[failureKey(label, index)]; ok {
		outcome.Label = label
		outcome.Index = index
		return outcome
	}
	return domain.PublishOutcome{Label: label, Index: index, Class: domain.OutcomeOK, Status: 201}
}

func newTestEngine(t *testing.T, classifier ports.Classifier, registry ports.TransformerRegistry, publisher ports.Publisher) *Engine {
	t.Helper()
	engine, err := NewEngine(EngineDeps{
		Classifier: classifier,
		Registry:   registry,
		Validator:  stubValidator{},
		Publisher:  publisher,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestNewEngineRequiresDeps(t *testing.T) {
	t.Parallel()

	deps := EngineDeps{
		Classifier: stubClassifier{},
		Registry:   stubRegistry{},
		Validator:  stubValidator{},
		Publisher:  &stubPublisher{},
	}

	for _, tc := range []struct {
		name  string
		strip func(*EngineDeps)
	}{
		{"classifier", func(d *EngineDeps) { d.Classifier = nil }},
		{"registry", func(d *EngineDeps) { d.Registry = nil }},
		{"validator", func(d *EngineDeps) { d.Validator = nil }},
		{"publisher", func(d *EngineDeps) { d.Publisher = nil }},
	} {
		broken := deps
		tc.strip(&broken)
		if _, err := NewEngine(broken); err == nil {
			t.Fatalf("expected error with nil %s", tc.name)
		}
	}

	if _, err := NewEngine(deps); err != nil {
		t.Fatalf("complete deps rejected: %v", err)
	}
}

func TestProcessItemSingleLabelHappyPath(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelWorkExperience}},
		stubRegistry{domain.LabelWorkExperience: stubTransformer{
			label:      domain.LabelWorkExperience,
			candidates: []domain.Candidate{{"title": "Senior Engineer"}},
		}},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:1", Text: "joined Acme"})

	if len(result.Errors) != 0 {
		t.Fatalf("happy path must record no errors, got %v", result.Errors)
	}
	if len(result.Records[domain.LabelWorkExperience]) != 1 {
		t.Fatalf("expected one record, got %+v", result.Records)
	}
	outcomes := result.Outcomes[domain.LabelWorkExperience]
	if len(outcomes) != 1 || outcomes[0].Class != domain.OutcomeOK || outcomes[0].Status != 201 {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
}

func TestProcessItemNoLabelsSkipsBranchesAndPublish(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	engine := newTestEngine(t,
		stubClassifier{notes: []string{"classification error: empty item text"}},
		stubRegistry{},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:empty"})

	if len(result.Classifications) != 0 || len(result.Records) != 0 {
		t.Fatalf("expected empty classification and records, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected the single classification error, got %v", result.Errors)
	}
	if len(publisher.calls) != 0 {
		t.Fatalf("publish must not be reached, got %d calls", len(publisher.calls))
	}
}

func TestProcessItemJoinWaitsForSlowBranch(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelBlog, domain.LabelSkill}},
		stubRegistry{
			domain.LabelBlog: stubTransformer{
				label:      domain.LabelBlog,
				delay:      50 * time.Millisecond,
				candidates: []domain.Candidate{{"title": "Slow Post"}},
			},
			domain.LabelSkill: stubTransformer{
				label:      domain.LabelSkill,
				candidates: []domain.Candidate{{"name": "Go"}},
			},
		},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:2", Text: "post"})

	if len(result.Records[domain.LabelBlog]) != 1 || len(result.Records[domain.LabelSkill]) != 1 {
		t.Fatalf("join must wait for every branch, got %+v", result.Records)
	}
	// Publishing follows classification order, never completion order.
	if len(publisher.calls) != 2 {
		t.Fatalf("expected 2 publish calls, got %d", len(publisher.calls))
	}
	if publisher.calls[0].label != domain.LabelBlog || publisher.calls[1].label != domain.LabelSkill {
		t.Fatalf("publish order follows classification order, got %+v", publisher.calls)
	}
}

func TestProcessItemErrorsMergeInClassificationOrder(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelBlog, domain.LabelSkill}},
		stubRegistry{
			// The blog branch finishes last but its error must come first.
			domain.LabelBlog: stubTransformer{
				label: domain.LabelBlog,
				delay: 50 * time.Millisecond,
				err:   fmt.Errorf("oracle unreachable"),
			},
			domain.LabelSkill: stubTransformer{
				label:      domain.LabelSkill,
				candidates: []domain.Candidate{{"invalid": "skills is required"}},
			},
		},
		&stubPublisher{})

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:3", Text: "post"})

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "transform blog:") {
		t.Fatalf("blog error must come first: %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[1], "validate skill candidate 1:") {
		t.Fatalf("skill error must come second: %v", result.Errors)
	}
}

func TestProcessItemPartialValidationPublishesSurvivors(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{}
	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelSkill}},
		stubRegistry{domain.LabelSkill: stubTransformer{
			label: domain.LabelSkill,
			candidates: []domain.Candidate{
				{"name": "Languages"},
				{"invalid": "skills is required"},
				{"name": "Cloud"},
			},
		}},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:4", Text: "skills"})

	if len(result.Records[domain.LabelSkill]) != 2 {
		t.Fatalf("expected 2 surviving records, got %+v", result.Records)
	}
	if len(publisher.calls) != 2 {
		t.Fatalf("expected 2 publish calls, got %d", len(publisher.calls))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "candidate 2") {
		t.Fatalf("expected one rejection naming candidate 2, got %v", result.Errors)
	}
}

func TestProcessItemPublishFailureDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{failures: map[string]domain.PublishOutcome{
		failureKey(domain.LabelSkill, 0): {Class: domain.OutcomeHTTPError, Status: 500, Detail: "internal error"},
	}}
	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelSkill}},
		stubRegistry{domain.LabelSkill: stubTransformer{
			label: domain.LabelSkill,
			candidates: []domain.Candidate{
				{"name": "Languages"},
				{"name": "Cloud"},
			},
		}},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:5", Text: "skills"})

	if len(publisher.calls) != 2 {
		t.Fatalf("a failed publish must not stop siblings, got %d calls", len(publisher.calls))
	}
	outcomes := result.Outcomes[domain.LabelSkill]
	if len(outcomes) != 2 || outcomes[0].Class != domain.OutcomeHTTPError || outcomes[1].Class != domain.OutcomeOK {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "status 500") {
		t.Fatalf("expected one publish error with the status, got %v", result.Errors)
	}
}

func TestProcessItemTransportErrorRecorded(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{failures: map[string]domain.PublishOutcome{
		failureKey(domain.LabelBlog, 0): {Class: domain.OutcomeTransportError, Detail: "connection refused"},
	}}
	engine := newTestEngine(t,
		stubClassifier{labels: []domain.Label{domain.LabelBlog}},
		stubRegistry{domain.LabelBlog: stubTransformer{
			label:      domain.LabelBlog,
			candidates: []domain.Candidate{{"title": "Post"}},
		}},
		publisher)

	result := engine.ProcessItem(context.Background(), domain.Item{ID: "urn:6", Text: "post"})

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "connection refused") {
		t.Fatalf("expected transport detail in error, got %v", result.Errors)
	}
}
