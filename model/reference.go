package model

import "time"

// Reference confidence tiers. An exact whole-word match on a document name
// scores higher than a match on one of its significant words.
const (
	ConfidenceExactMatch   = 0.9
	ConfidencePartialMatch = 0.6
)

// Reference is a directed edge recording that the source document's text
// mentions the target document by name. At most one reference exists per
// (source, target) pair.
type Reference struct {
	ID         int64     `json:"id"`
	SourceID   int64     `json:"source_id"`
	TargetID   int64     `json:"target_id"`
	Context    string    `json:"context,omitempty"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
