package model

import "time"

// EventType classifies a timeline event extracted from document text
type EventType string

const (
	EventTypeHearing           EventType = "hearing"
	EventTypeFiling            EventType = "filing"
	EventTypeDeadline          EventType = "deadline"
	EventTypeTrial             EventType = "trial"
	EventTypeDocumentDate      EventType = "document_date"
	EventTypeDocumentExecution EventType = "document_execution"
	EventTypeMeeting           EventType = "meeting"
)

// HolidayImportance is assigned to events whose date coincides with a
// recognized US holiday; such matches are timeline noise, not case-critical.
const HolidayImportance = 4

// TimelineEvent is a dated, typed occurrence discovered in document text.
type TimelineEvent struct {
	ID          int64     `json:"id"`
	DocumentID  int64     `json:"document_id"`
	EventType   EventType `json:"event_type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Importance  int       `json:"importance"`
	Context     string    `json:"context,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultImportance returns the nominal salience for an event type.
func (t EventType) DefaultImportance() int {
	switch t {
	case EventTypeTrial, EventTypeHearing:
		return 8
	case EventTypeDeadline:
		return 7
	case EventTypeFiling:
		return 6
	case EventTypeDocumentDate, EventTypeDocumentExecution:
		return 5
	default:
		return 4
	}
}
