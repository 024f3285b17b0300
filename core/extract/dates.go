package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lexgraph/lexgraph/helper"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ParseDate parses a natural language date string.
func ParseDate(text string) (time.Time, error) {
	parsed, err := dateparse.ParseAny(strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, helper.NewError("parsing date", err)
	}
	return parsed, nil
}

// ParseDateForward parses a date string with forward bias. A date without an
// explicit year is resolved against the current year and rolled forward by one
// year if it lands more than 48 hours in the past, so "March 20" written in
// December refers to the coming March.
func ParseDateForward(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if yearPattern.MatchString(text) {
		parsed, err := dateparse.ParseAny(text)
		if err != nil {
			return time.Time{}, helper.NewError("parsing date", err)
		}
		return parsed, nil
	}

	// No explicit year: dateparse would default to year 1, so resolve against
	// the current year before applying the roll-forward.
	parsed, err := dateparse.ParseAny(text + ", " + strconv.Itoa(now.Year()))
	if err != nil {
		parsed, err = dateparse.ParseAny(text)
		if err != nil {
			return time.Time{}, helper.NewError("parsing date", err)
		}
	}

	if parsed.Before(now.Add(-48 * time.Hour)) {
		parsed = parsed.AddDate(1, 0, 0)
	}
	return parsed, nil
}

// FindDate extracts and parses the first date-like substring in text.
func (r *RuleSet) FindDate(text string, now time.Time) (time.Time, string, bool) {
	match := r.DatePattern.FindString(text)
	if len(match) == 0 {
		return time.Time{}, "", false
	}
	parsed, err := ParseDateForward(match, now)
	if err != nil {
		return time.Time{}, "", false
	}
	return parsed, match, true
}

// ParseRelativeDays resolves a "within N days" capture against now.
func ParseRelativeDays(capture string, now time.Time) (time.Time, error) {
	days, err := strconv.Atoi(strings.TrimSpace(capture))
	if err != nil {
		return time.Time{}, helper.NewError("parsing day count", err)
	}
	return now.AddDate(0, 0, days), nil
}
