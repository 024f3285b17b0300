package extract

import (
	"testing"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEntity(entities []*model.Entity, name string) *model.Entity {
	for _, entity := range entities {
		if entity.Name == name {
			return entity
		}
	}
	return nil
}

func TestEntityExtractor(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	t.Run("Extract person from text", func(t *testing.T) {
		entities := extractor.Extract("The Motion was filed on March 3, 2024 by John Smith.")
		person := findEntity(entities, "John Smith")
		require.NotNil(t, person)
		assert.Equal(t, model.EntityTypePerson, person.Type)
		assert.Equal(t, ImportancePerson, person.Importance)
		assert.Contains(t, person.Context, "John Smith")
	})

	t.Run("Extract organization with keyword", func(t *testing.T) {
		entities := extractor.Extract("Plaintiff retained Jackson Associates LLC for the appeal.")
		org := findEntity(entities, "Jackson Associates LLC")
		require.NotNil(t, org)
		assert.Equal(t, model.EntityTypeOrganization, org.Type)
		assert.Equal(t, ImportanceOrganization, org.Importance)
	})

	t.Run("Long capitalized run defaults to organization", func(t *testing.T) {
		entities := extractor.Extract("Filed with the Pacific Northwest Legal Aid Society today.")
		org := findEntity(entities, "Pacific Northwest Legal Aid Society")
		require.NotNil(t, org)
		assert.Equal(t, model.EntityTypeOrganization, org.Type)
		assert.Equal(t, ImportanceOrganizationLong, org.Importance)
	})

	t.Run("Stopword sequences are suppressed", func(t *testing.T) {
		entities := extractor.Extract("The Motion was denied. This Case was remanded to the State County clerk.")
		assert.Nil(t, findEntity(entities, "The Motion"))
		assert.Nil(t, findEntity(entities, "This Case"))
		assert.Nil(t, findEntity(entities, "State County"))
	})

	t.Run("Extract date entity", func(t *testing.T) {
		entities := extractor.Extract("The hearing took place on March 3, 2024 downtown.")
		date := findEntity(entities, "March 3, 2024")
		require.NotNil(t, date)
		assert.Equal(t, model.EntityTypeDate, date.Type)
		assert.Equal(t, 5, date.Importance)
	})

	t.Run("Extract case number with high importance", func(t *testing.T) {
		entities := extractor.Extract("In re Case No. 2:24-cv-01234, the parties stipulate.")
		caseNumber := findEntity(entities, "Case No. 2:24-cv-01234")
		require.NotNil(t, caseNumber)
		assert.Equal(t, model.EntityTypeCaseNumber, caseNumber.Type)
		assert.Equal(t, 9, caseNumber.Importance)
	})

	t.Run("Extract address", func(t *testing.T) {
		entities := extractor.Extract("Service was made at 123 Main Street on Monday.")
		address := findEntity(entities, "123 Main Street")
		require.NotNil(t, address)
		assert.Equal(t, model.EntityTypeAddress, address.Type)
		assert.Equal(t, 6, address.Importance)
	})

	t.Run("Extract currency amount", func(t *testing.T) {
		entities := extractor.Extract("Damages of $1,250,000.00 are sought by the plaintiff.")
		money := findEntity(entities, "$1,250,000.00")
		require.NotNil(t, money)
		assert.Equal(t, model.EntityTypeMoney, money.Type)
		assert.Equal(t, 7, money.Importance)
	})

	t.Run("Repeated mentions deduplicated within one pass", func(t *testing.T) {
		entities := extractor.Extract("John Smith moved to dismiss. John Smith later withdrew.")
		count := 0
		for _, entity := range entities {
			if entity.Name == "John Smith" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Empty text yields no entities", func(t *testing.T) {
		entities := extractor.Extract("")
		assert.Empty(t, entities)
	})
}

func TestClassifyName(t *testing.T) {
	extractor := NewEntityExtractor(nil)

	tests := []struct {
		input        string
		expectedName string
		expectedType model.EntityType
		ok           bool
	}{
		{"John Smith", "John Smith", model.EntityTypePerson, true},
		{"Mary Jane Watson", "Mary Jane Watson", model.EntityTypePerson, true},
		{"Acme Corp", "Acme Corp", model.EntityTypeOrganization, true},
		{"First National Bank", "First National Bank", model.EntityTypeOrganization, true},
		{"Pacific Northwest Legal Aid", "Pacific Northwest Legal Aid", model.EntityTypeOrganization, true},
		{"The Smith Affidavit", "Smith Affidavit", model.EntityTypePerson, true},
		{"United States District Court", "United States District Court", model.EntityTypeOrganization, true},
		{"The Motion", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, entityType, _, ok := extractor.classifyName(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expectedName, name)
				assert.Equal(t, tt.expectedType, entityType)
			}
		})
	}
}
