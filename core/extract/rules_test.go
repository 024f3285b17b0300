package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	t.Run("All rule families are populated", func(t *testing.T) {
		assert.Len(t, rules.Entities, 4)
		assert.NotEmpty(t, rules.NamePatterns)
		assert.Len(t, rules.Events, 7)
		assert.Len(t, rules.Deadlines, 9)
		assert.Len(t, rules.Holidays, 9)
		assert.NotEmpty(t, rules.DocumentTypes)
	})

	t.Run("Date placeholder is expanded", func(t *testing.T) {
		for _, rule := range rules.Events {
			for _, pattern := range rule.Patterns {
				assert.NotContains(t, pattern.String(), "<date>")
			}
		}
	})

	t.Run("Same instance on repeated calls", func(t *testing.T) {
		assert.Same(t, rules, DefaultRules())
	})
}

func TestLoadRules(t *testing.T) {
	t.Run("Missing date pattern fails", func(t *testing.T) {
		_, err := LoadRules([]byte("entity_rules: []"))
		assert.Error(t, err)
	})

	t.Run("Invalid yaml fails", func(t *testing.T) {
		_, err := LoadRules([]byte("{invalid"))
		assert.Error(t, err)
	})

	t.Run("Invalid pattern fails", func(t *testing.T) {
		_, err := LoadRules([]byte("date_pattern: '[unclosed'"))
		assert.Error(t, err)
	})
}

func TestIsHoliday(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		date    string
		holiday bool
	}{
		{"December 25, 2025", true},
		{"January 1, 2026", true},
		{"July 4, 2024", true},
		{"Thanksgiving", true},
		{"March 3, 2024", false},
		{"June 15, 2025", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.holiday, rules.IsHoliday(tt.date))
		})
	}
}
