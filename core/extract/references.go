package extract

import (
	"regexp"
	"strings"

	"github.com/lexgraph/lexgraph/model"
)

// Resolver detects cross-references from a document's text to other known
// documents by name. It operates on a roster of all document names, usually
// loaded fresh per extraction pass.
type Resolver struct {
	roster []*model.DocumentName
}

// NewResolver creates a resolver over the given document name roster.
func NewResolver(roster []*model.DocumentName) *Resolver {
	return &Resolver{roster: roster}
}

// FindReferences scans text for mentions of other documents. An exact
// whole-word match of the full document name scores 0.9 and short-circuits,
// otherwise the first whole-word hit of a name word longer than 5 characters
// scores 0.6. Each target document is referenced at most once per pass and the
// source document itself is skipped.
func (r *Resolver) FindReferences(sourceID int64, text string) []*model.Reference {
	references := []*model.Reference{}
	for _, candidate := range r.roster {
		if candidate.ID == sourceID || len(candidate.Name) < MinEntityLength {
			continue
		}

		if match, found := wholeWordMatch(text, candidate.Name); found {
			references = append(references, &model.Reference{
				SourceID:   sourceID,
				TargetID:   candidate.ID,
				Context:    WindowAround(text, match, 50),
				Confidence: model.ConfidenceExactMatch,
			})
			continue
		}

		for _, word := range strings.Fields(candidate.Name) {
			if len(word) <= 5 {
				continue
			}
			if match, found := wholeWordMatch(text, word); found {
				references = append(references, &model.Reference{
					SourceID:   sourceID,
					TargetID:   candidate.ID,
					Context:    WindowAround(text, match, 50),
					Confidence: model.ConfidencePartialMatch,
				})
				break
			}
		}
	}
	return references
}

// wholeWordMatch finds the first case-insensitive whole-word occurrence of
// literal in text and returns the matched substring as written in the text.
func wholeWordMatch(text string, literal string) (string, bool) {
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(literal) + `\b`)
	if err != nil {
		return "", false
	}
	match := pattern.FindString(text)
	return match, len(match) > 0
}
