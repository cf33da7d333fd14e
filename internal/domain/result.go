package domain

// OutcomeClass groups publish outcomes into coarse result kinds.
type OutcomeClass string

const (
	OutcomeOK             OutcomeClass = "ok"
	OutcomeHTTPError      OutcomeClass = "http_error"
	OutcomeTransportError OutcomeClass = "transport_error"
)

// PublishOutcome records one outbound call, keyed by label and the record's
// index within that label.
type PublishOutcome struct {
	Label  Label        `json:"label"`
	Index  int          `json:"index"`
	Class  OutcomeClass `json:"class"`
	Status int          `json:"status,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// PipelineResult aggregates everything that happened to one item. Each item
// owns its own result; errors append in the order their stages ran.
type PipelineResult struct {
	ItemID          string                     `json:"itemId"`
	Classifications []Label                    `json:"classifications"`
	Records         map[Label][]Record         `json:"records"`
	Outcomes        map[Label][]PublishOutcome `json:"outcomes"`
	Errors          []string                   `json:"errors"`
}

// NewPipelineResult prepares an empty result for the given item.
func NewPipelineResult(itemID string) PipelineResult {
	return PipelineResult{
		ItemID:   itemID,
		Records:  map[Label][]Record{},
		Outcomes: map[Label][]PublishOutcome{},
	}
}
