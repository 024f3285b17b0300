package extract

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/lexgraph/lexgraph/model"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYaml []byte

// EntityRule describes one family of entity patterns sharing a type.
type EntityRule struct {
	Type          model.EntityType
	Importance    int
	ContextRadius int
	Patterns      []*regexp.Regexp
}

// EventRule describes one timeline event family. Every pattern captures the
// date substring in group 1.
type EventRule struct {
	Type          model.EventType
	ContextRadius int
	Patterns      []*regexp.Regexp
}

// DeadlineRule describes one deadline pattern family. Relative rules capture a
// day count in group 1 instead of a date.
type DeadlineRule struct {
	Name          string
	RelativeDays  bool
	ContextRadius int
	Patterns      []*regexp.Regexp
}

// EventKeyword maps a context keyword to the event type it implies.
type EventKeyword struct {
	Keyword string
	Type    model.EventType
}

// RuleSet holds all compiled extraction rules.
type RuleSet struct {
	DatePattern   *regexp.Regexp
	Entities      []EntityRule
	NamePatterns  []*regexp.Regexp
	NameStopwords map[string]bool
	OrgKeywords   map[string]bool
	Events        []EventRule
	ActionVerbs   *regexp.Regexp
	EventKeywords []EventKeyword
	Deadlines     []DeadlineRule
	Holidays      []*regexp.Regexp
	ResponseWords *regexp.Regexp
	DocumentTypes []string
}

type rawRules struct {
	DatePattern string `yaml:"date_pattern"`
	EntityRules []struct {
		Type          string   `yaml:"type"`
		Importance    int      `yaml:"importance"`
		ContextRadius int      `yaml:"context_radius"`
		Patterns      []string `yaml:"patterns"`
	} `yaml:"entity_rules"`
	NamePatterns  []string `yaml:"name_patterns"`
	NameStopwords []string `yaml:"name_stopwords"`
	OrgKeywords   []string `yaml:"org_keywords"`
	EventRules    []struct {
		Type          string   `yaml:"type"`
		ContextRadius int      `yaml:"context_radius"`
		Patterns      []string `yaml:"patterns"`
	} `yaml:"event_rules"`
	ActionVerbs   []string `yaml:"action_verbs"`
	EventKeywords []struct {
		Keyword string `yaml:"keyword"`
		Type    string `yaml:"type"`
	} `yaml:"event_keywords"`
	DeadlineRules []struct {
		Name          string   `yaml:"name"`
		RelativeDays  bool     `yaml:"relative_days"`
		ContextRadius int      `yaml:"context_radius"`
		Patterns      []string `yaml:"patterns"`
	} `yaml:"deadline_rules"`
	HolidayPatterns []string `yaml:"holiday_patterns"`
	ResponseWords   []string `yaml:"response_words"`
	DocumentTypes   []string `yaml:"document_types"`
}

var (
	defaultRules     *RuleSet
	defaultRulesOnce sync.Once
)

// DefaultRules returns the rule set compiled from the embedded rule tables.
// The embedded tables are part of the build, so a compile error here panics.
func DefaultRules() *RuleSet {
	defaultRulesOnce.Do(func() {
		rules, err := LoadRules(defaultRulesYaml)
		if err != nil {
			panic(fmt.Sprintf("loading embedded extraction rules: %v", err))
		}
		defaultRules = rules
	})
	return defaultRules
}

// LoadRules parses and compiles a yaml rule table.
func LoadRules(data []byte) (*RuleSet, error) {
	raw := &rawRules{}
	err := yaml.Unmarshal(data, raw)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling rules: %w", err)
	}
	if len(raw.DatePattern) == 0 {
		return nil, fmt.Errorf("error in rules: missing date_pattern")
	}

	rules := &RuleSet{
		NameStopwords: map[string]bool{},
		OrgKeywords:   map[string]bool{},
		DocumentTypes: raw.DocumentTypes,
	}

	rules.DatePattern, err = regexp.Compile(raw.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("error compiling date_pattern: %w", err)
	}

	for _, r := range raw.EntityRules {
		rule := EntityRule{
			Type:          model.EntityType(r.Type),
			Importance:    r.Importance,
			ContextRadius: r.ContextRadius,
		}
		rule.Patterns, err = compileAll(r.Patterns, raw.DatePattern)
		if err != nil {
			return nil, fmt.Errorf("error compiling entity rule %s: %w", r.Type, err)
		}
		rules.Entities = append(rules.Entities, rule)
	}

	rules.NamePatterns, err = compileAll(raw.NamePatterns, raw.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("error compiling name patterns: %w", err)
	}
	for _, w := range raw.NameStopwords {
		rules.NameStopwords[strings.ToLower(w)] = true
	}
	for _, w := range raw.OrgKeywords {
		rules.OrgKeywords[strings.ToLower(w)] = true
	}

	for _, r := range raw.EventRules {
		rule := EventRule{
			Type:          model.EventType(r.Type),
			ContextRadius: r.ContextRadius,
		}
		rule.Patterns, err = compileAll(r.Patterns, raw.DatePattern)
		if err != nil {
			return nil, fmt.Errorf("error compiling event rule %s: %w", r.Type, err)
		}
		rules.Events = append(rules.Events, rule)
	}

	rules.ActionVerbs, err = wordAlternation(raw.ActionVerbs)
	if err != nil {
		return nil, fmt.Errorf("error compiling action verbs: %w", err)
	}
	for _, k := range raw.EventKeywords {
		rules.EventKeywords = append(rules.EventKeywords, EventKeyword{
			Keyword: strings.ToLower(k.Keyword),
			Type:    model.EventType(k.Type),
		})
	}

	for _, r := range raw.DeadlineRules {
		rule := DeadlineRule{
			Name:          r.Name,
			RelativeDays:  r.RelativeDays,
			ContextRadius: r.ContextRadius,
		}
		rule.Patterns, err = compileAll(r.Patterns, raw.DatePattern)
		if err != nil {
			return nil, fmt.Errorf("error compiling deadline rule %s: %w", r.Name, err)
		}
		rules.Deadlines = append(rules.Deadlines, rule)
	}

	rules.Holidays, err = compileAll(raw.HolidayPatterns, raw.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("error compiling holiday patterns: %w", err)
	}

	rules.ResponseWords, err = wordAlternation(raw.ResponseWords)
	if err != nil {
		return nil, fmt.Errorf("error compiling response words: %w", err)
	}

	return rules, nil
}

// IsHoliday reports whether the raw date string matches a recognized US
// holiday pattern.
func (r *RuleSet) IsHoliday(dateText string) bool {
	for _, pattern := range r.Holidays {
		if pattern.MatchString(dateText) {
			return true
		}
	}
	return false
}

func compileAll(patterns []string, datePattern string) ([]*regexp.Regexp, error) {
	compiled := []*regexp.Regexp{}
	for _, p := range patterns {
		expanded := strings.ReplaceAll(p, "<date>", datePattern)
		re, err := regexp.Compile(expanded)
		if err != nil {
			return nil, fmt.Errorf("error compiling pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func wordAlternation(words []string) (*regexp.Regexp, error) {
	quoted := []string{}
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
