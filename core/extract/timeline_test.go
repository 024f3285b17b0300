package extract

import (
	"testing"
	"time"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEvent(events []*model.TimelineEvent, eventType model.EventType) *model.TimelineEvent {
	for _, event := range events {
		if event.EventType == eventType {
			return event
		}
	}
	return nil
}

func TestTimelineExtractor(t *testing.T) {
	extractor := NewTimelineExtractor(nil)

	t.Run("Extract filing and deadline from combined text", func(t *testing.T) {
		text := "The Motion was filed on March 3, 2024 by John Smith. Response due by March 20, 2024."
		events := extractor.Extract(1, text)

		filing := findEvent(events, model.EventTypeFiling)
		require.NotNil(t, filing)
		assert.Equal(t, time.March, filing.Date.Month())
		assert.Equal(t, 3, filing.Date.Day())
		assert.Equal(t, 2024, filing.Date.Year())
		assert.Equal(t, 6, filing.Importance)

		deadline := findEvent(events, model.EventTypeDeadline)
		require.NotNil(t, deadline)
		assert.Equal(t, 20, deadline.Date.Day())
		assert.Equal(t, 7, deadline.Importance)
	})

	t.Run("Extract hearing with default importance", func(t *testing.T) {
		events := extractor.Extract(1, "A status hearing is scheduled for April 10, 2024 in courtroom 5.")
		hearing := findEvent(events, model.EventTypeHearing)
		require.NotNil(t, hearing)
		assert.Equal(t, 8, hearing.Importance)
		assert.Contains(t, hearing.Context, "courtroom 5")
	})

	t.Run("Holiday date overrides importance", func(t *testing.T) {
		events := extractor.Extract(1, "A hearing scheduled for December 25, 2025 will address the motion.")
		hearing := findEvent(events, model.EventTypeHearing)
		require.NotNil(t, hearing)
		assert.Equal(t, model.EventTypeHearing, hearing.EventType)
		assert.Equal(t, model.HolidayImportance, hearing.Importance)
	})

	t.Run("Extract trial date", func(t *testing.T) {
		events := extractor.Extract(1, "Trial is set for June 1, 2025 before Judge Morrison.")
		trial := findEvent(events, model.EventTypeTrial)
		require.NotNil(t, trial)
		assert.Equal(t, 8, trial.Importance)
	})

	t.Run("Extract execution date", func(t *testing.T) {
		events := extractor.Extract(1, "This agreement was signed on January 15, 2024 by both parties.")
		execution := findEvent(events, model.EventTypeDocumentExecution)
		require.NotNil(t, execution)
		assert.Equal(t, 5, execution.Importance)
	})

	t.Run("Unparseable dates are skipped", func(t *testing.T) {
		events := extractor.Extract(1, "The hearing is scheduled for 99/99/9999 at noon.")
		assert.Empty(t, events)
	})

	t.Run("Second pass requires an action verb", func(t *testing.T) {
		events := extractor.Extract(1, "As of May 5, 2024 nothing had happened.")
		assert.Empty(t, events)

		events = extractor.Extract(1, "The order was issued near May 5, 2024 in chambers.")
		require.Len(t, events, 1)
		assert.Equal(t, model.EventTypeDocumentDate, events[0].EventType)
	})

	t.Run("Second pass infers type from keywords", func(t *testing.T) {
		events := extractor.Extract(1, "The trial venue was held open until August 2, 2024 pending review.")
		require.Len(t, events, 1)
		assert.Equal(t, model.EventTypeTrial, events[0].EventType)
	})

	t.Run("Duplicate matches collapse within one pass", func(t *testing.T) {
		text := "Hearing scheduled for April 10, 2024. Hearing scheduled for April 10, 2024."
		events := extractor.Extract(1, text)
		hearings := 0
		for _, event := range events {
			if event.EventType == model.EventTypeHearing {
				hearings++
			}
		}
		assert.Equal(t, 1, hearings)
	})

	t.Run("Whitespace is normalized before matching", func(t *testing.T) {
		events := extractor.Extract(1, "The complaint was\nfiled on\n  March 3, 2024 downtown.")
		assert.NotNil(t, findEvent(events, model.EventTypeFiling))
	})
}
