package extract

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
)

// EntityExtractFunc is the pluggable entity extraction contract. The
// rule-based extractor satisfies it directly, the NER path wraps a model.
type EntityExtractFunc func(text string) ([]*model.Entity, error)

// NERExtractor creates a higher-quality entity extraction path backed by a
// NER model. Uses distilbert-NER for named entity recognition. Callers should
// fall back to the rule-based extractor when this returns an error.
func NERExtractor() (EntityExtractFunc, error) {
	// Prepare model (download if needed)
	modelName := "KnightsAnalytics/distilbert-NER"
	modelPath, err := helper.PrepareModel(modelName, "model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create token classification pipeline for NER
	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(text string) ([]*model.Entity, error) {
		result, err := nerPipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to run NER: %w", err)
		}

		if len(result.Entities) == 0 {
			return nil, nil
		}

		var entities []*model.Entity
		for _, entity := range result.Entities[0] {
			entityType, importance, ok := mapNERLabel(entity.Entity)
			if !ok {
				continue
			}
			name := strings.TrimSpace(entity.Word)
			if len(name) < MinEntityLength {
				continue
			}
			entities = append(entities, &model.Entity{
				Name:       name,
				Type:       entityType,
				Importance: importance,
				Context:    WindowAround(text, name, 50),
			})
		}

		return entities, nil
	}, nil
}

// mapNERLabel maps a BIO-tagged NER label onto a case entity type. MISC and
// unknown labels are dropped, the rule tables cover those families better.
func mapNERLabel(label string) (model.EntityType, int, bool) {
	label = strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")
	switch label {
	case "PER":
		return model.EntityTypePerson, ImportancePerson, true
	case "ORG":
		return model.EntityTypeOrganization, ImportanceOrganization, true
	case "LOC":
		return model.EntityTypeAddress, 6, true
	default:
		return "", 0, false
	}
}
