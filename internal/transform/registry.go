// Package transform maps each label to a transformer that turns one item
// into candidate records, applying deterministic defaulting on top of the
// transformation oracle's output.
package transform

import (
	"fmt"
	"time"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// Registry holds one transformer per vocabulary label.
type Registry struct {
	transformers map[domain.Label]ports.Transformer
}

var _ ports.TransformerRegistry = (*Registry)(nil)

// NewRegistry builds transformers for the full vocabulary. The now function
// drives defaulting (dates, years); nil uses time.Now.
func NewRegistry(oracle ports.TransformOracle, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{transformers: map[domain.Label]ports.Transformer{}}
	r.register(&blogTransformer{oracle: oracle, now: now})
	r.register(&workTransformer{oracle: oracle})
	r.register(&educationTransformer{oracle: oracle, now: now})
	r.register(&achievementTransformer{oracle: oracle, now: now})
	r.register(&skillTransformer{oracle: oracle})
	return r
}

func (r *Registry) register(t ports.Transformer) {
	r.transformers[t.Label()] = t
}

// Resolve returns the transformer bound to the label.
func (r *Registry) Resolve(label domain.Label) (ports.Transformer, error) {
	if t, ok := r.transformers[label]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("no transformer registered for label %s", label)
}
