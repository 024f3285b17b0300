package extract

import (
	"strings"

	"github.com/lexgraph/lexgraph/model"
)

// MinEntityLength suppresses short false positive name matches.
const MinEntityLength = 5

// ImportancePerson and friends are the base importance scores credited per
// mention of each entity type.
const (
	ImportancePerson           = 7
	ImportanceOrganization     = 6
	ImportanceOrganizationLong = 5
)

// EntityExtractor finds case entities in document text using the declarative
// rule tables. It is stateless and safe for concurrent use.
type EntityExtractor struct {
	rules *RuleSet
}

// NewEntityExtractor creates an extractor with the given rule set, falling
// back to the embedded default rules when nil.
func NewEntityExtractor(rules *RuleSet) *EntityExtractor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &EntityExtractor{rules: rules}
}

// Extract scans text and returns one entity per distinct literal. The context
// is the window around the first occurrence of the literal. Repeated mentions
// of the same literal are deduplicated within the document, accumulation
// across documents happens at persistence time.
func (e *EntityExtractor) Extract(text string) []*model.Entity {
	entities := []*model.Entity{}
	seen := map[string]bool{}

	for _, pattern := range e.rules.NamePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			name, entityType, importance, ok := e.classifyName(match)
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			entities = append(entities, &model.Entity{
				Name:       name,
				Type:       entityType,
				Importance: importance,
				Context:    WindowAround(text, name, 50),
			})
		}
	}

	for _, rule := range e.rules.Entities {
		for _, pattern := range rule.Patterns {
			for _, match := range pattern.FindAllString(text, -1) {
				name := strings.TrimSpace(match)
				if len(name) == 0 || seen[name] {
					continue
				}
				seen[name] = true
				entities = append(entities, &model.Entity{
					Name:       name,
					Type:       rule.Type,
					Importance: rule.Importance,
					Context:    WindowAround(text, name, rule.ContextRadius),
				})
			}
		}
	}

	return entities
}

// classifyName decides whether a capitalized word run is a person or an
// organization. Leading and trailing stopwords are stripped first, what
// remains must still look like a multi-word name.
func (e *EntityExtractor) classifyName(match string) (string, model.EntityType, int, bool) {
	words := strings.Fields(match)

	hasOrgKeyword := false
	for _, word := range words {
		if e.rules.OrgKeywords[strings.ToLower(strings.Trim(word, "."))] {
			hasOrgKeyword = true
		}
	}

	if !hasOrgKeyword {
		for len(words) > 0 && e.rules.NameStopwords[strings.ToLower(words[0])] {
			words = words[1:]
		}
		for len(words) > 0 && e.rules.NameStopwords[strings.ToLower(words[len(words)-1])] {
			words = words[:len(words)-1]
		}
	}

	name := strings.Join(words, " ")
	if len(words) < 2 || len(name) < MinEntityLength {
		return "", "", 0, false
	}

	if hasOrgKeyword {
		return name, model.EntityTypeOrganization, ImportanceOrganization, true
	}
	if len(words) > 3 {
		return name, model.EntityTypeOrganization, ImportanceOrganizationLong, true
	}
	return name, model.EntityTypePerson, ImportancePerson, true
}
