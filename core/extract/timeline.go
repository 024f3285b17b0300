package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lexgraph/lexgraph/model"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// TimelineExtractor finds date-anchored legal events in document text.
type TimelineExtractor struct {
	rules *RuleSet
}

// NewTimelineExtractor creates an extractor with the given rule set, falling
// back to the embedded default rules when nil.
func NewTimelineExtractor(rules *RuleSet) *TimelineExtractor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &TimelineExtractor{rules: rules}
}

// Extract scans text with the event rule tables and returns the discovered
// events. Events whose raw date string matches a holiday pattern have their
// importance dropped to holiday noise level. Duplicates within a single pass
// are collapsed by (type, day, description).
func (e *TimelineExtractor) Extract(documentID int64, text string) []*model.TimelineEvent {
	text = whitespacePattern.ReplaceAllString(text, " ")

	events := []*model.TimelineEvent{}
	seen := map[string]bool{}
	capturedDates := map[string]bool{}

	for _, rule := range e.rules.Events {
		for _, pattern := range rule.Patterns {
			for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
				dateText := text[match[2]:match[3]]
				date, err := ParseDate(dateText)
				if err != nil {
					continue
				}
				capturedDates[dateText] = true

				event := e.newEvent(documentID, rule.Type, date, dateText, text, match[0], match[1], rule.ContextRadius)
				if key := dedupKey(event); !seen[key] {
					seen[key] = true
					events = append(events, event)
				}
			}
		}
	}

	events = append(events, e.secondPass(documentID, text, capturedDates, seen)...)
	return events
}

// secondPass picks up dates no event pattern anchored. A bare date only counts
// when an action verb appears in its context window, the event type is then
// inferred from nearby keywords.
func (e *TimelineExtractor) secondPass(documentID int64, text string, capturedDates map[string]bool, seen map[string]bool) []*model.TimelineEvent {
	events := []*model.TimelineEvent{}
	for _, match := range e.rules.DatePattern.FindAllStringIndex(text, -1) {
		dateText := text[match[0]:match[1]]
		if capturedDates[dateText] {
			continue
		}
		date, err := ParseDate(dateText)
		if err != nil {
			continue
		}

		context := Window(text, match[0], match[1], 100)
		if !e.rules.ActionVerbs.MatchString(context) {
			continue
		}

		eventType := model.EventTypeDocumentDate
		lowered := strings.ToLower(context)
		for _, keyword := range e.rules.EventKeywords {
			if strings.Contains(lowered, keyword.Keyword) {
				eventType = keyword.Type
				break
			}
		}

		event := e.newEvent(documentID, eventType, date, dateText, text, match[0], match[1], 100)
		if key := dedupKey(event); !seen[key] {
			seen[key] = true
			events = append(events, event)
		}
	}
	return events
}

func (e *TimelineExtractor) newEvent(documentID int64, eventType model.EventType, date time.Time, dateText string, text string, start int, end int, radius int) *model.TimelineEvent {
	importance := eventType.DefaultImportance()
	if e.rules.IsHoliday(dateText) {
		importance = model.HolidayImportance
	}
	return &model.TimelineEvent{
		DocumentID:  documentID,
		EventType:   eventType,
		Date:        date,
		Description: strings.TrimSpace(text[start:end]),
		Importance:  importance,
		Context:     Window(text, start, end, radius),
	}
}

func dedupKey(event *model.TimelineEvent) string {
	return fmt.Sprintf("%s|%s|%s", event.EventType, event.Date.Format("2006-01-02"), event.Description)
}
