package extract

import (
	"strings"
	"time"

	"github.com/lexgraph/lexgraph/model"
)

// StaleDeadlineGrace keeps deadlines that passed within the last two days,
// anything older is a stale match from historical text.
const StaleDeadlineGrace = 48 * time.Hour

// DeadlineScanner finds actionable due dates in document text.
type DeadlineScanner struct {
	rules *RuleSet
}

// NewDeadlineScanner creates a scanner with the given rule set, falling back
// to the embedded default rules when nil.
func NewDeadlineScanner(rules *RuleSet) *DeadlineScanner {
	if rules == nil {
		rules = DefaultRules()
	}
	return &DeadlineScanner{rules: rules}
}

// Extract scans text with the deadline rule tables. Absolute rules re-parse
// the context window around each match with forward date bias, relative rules
// resolve "within N days" against now. Matches older than the stale grace
// period are discarded.
func (s *DeadlineScanner) Extract(documentID int64, text string, now time.Time) []*model.Deadline {
	text = whitespacePattern.ReplaceAllString(text, " ")

	deadlines := []*model.Deadline{}
	seen := map[string]bool{}
	cutoff := now.Add(-StaleDeadlineGrace)

	for _, rule := range s.rules.Deadlines {
		for _, pattern := range rule.Patterns {
			for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
				context := Window(text, match[0], match[1], rule.ContextRadius)

				var date time.Time
				if rule.RelativeDays {
					parsed, err := ParseRelativeDays(text[match[2]:match[3]], now)
					if err != nil {
						continue
					}
					date = parsed
				} else {
					parsed, _, ok := s.rules.FindDate(context, now)
					if !ok {
						continue
					}
					date = parsed
				}
				if date.Before(cutoff) {
					continue
				}

				deadline := &model.Deadline{
					DocumentID:       documentID,
					Description:      strings.TrimSpace(text[match[0]:match[1]]),
					DeadlineDate:     date,
					ResponseRequired: s.rules.ResponseWords.MatchString(context),
					Type:             s.documentType(context),
				}
				key := deadline.Description + "|" + date.Format("2006-01-02")
				if !seen[key] {
					seen[key] = true
					deadlines = append(deadlines, deadline)
				}
			}
		}
	}

	return deadlines
}

// documentType returns the first legal document type found in the context,
// defaulting to Other.
func (s *DeadlineScanner) documentType(context string) string {
	lowered := strings.ToLower(context)
	for _, docType := range s.rules.DocumentTypes {
		if strings.Contains(lowered, strings.ToLower(docType)) {
			return docType
		}
	}
	return "Other"
}
