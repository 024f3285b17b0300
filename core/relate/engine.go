// Package relate answers relationship queries over the knowledge base:
// which documents cite each other and which are topically related through
// shared entities.
package relate

import (
	"github.com/lexgraph/lexgraph/database"
	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
)

// SharedEntityLimit caps the shared-entity view of a related-documents query.
const SharedEntityLimit = 10

// Engine combines the reference and entity handlers into relationship queries.
type Engine struct {
	documents  *database.DocumentsDBHandler
	entities   *database.EntitiesDBHandler
	references *database.ReferencesDBHandler
}

// NewEngine creates a new relationship engine.
func NewEngine(documents *database.DocumentsDBHandler, entities *database.EntitiesDBHandler, references *database.ReferencesDBHandler) *Engine {
	return &Engine{
		documents:  documents,
		entities:   entities,
		references: references,
	}
}

// RelatedDocuments returns the three relationship views for a document:
// outgoing references ordered by confidence, incoming back-references ordered
// by confidence, and up to ten documents sharing entities ordered by shared
// count. All three views are present even when empty.
func (e *Engine) RelatedDocuments(documentID int64) (*model.RelatedDocuments, error) {
	outgoing, err := e.references.SelectReferencesFromDocument(documentID)
	if err != nil {
		return nil, helper.NewError("selecting outgoing references", err)
	}

	incoming, err := e.references.SelectReferencesToDocument(documentID)
	if err != nil {
		return nil, helper.NewError("selecting incoming references", err)
	}

	shared, err := e.entities.SelectSharedEntityDocuments(documentID, SharedEntityLimit)
	if err != nil {
		return nil, helper.NewError("selecting shared entity documents", err)
	}

	related := &model.RelatedDocuments{
		References:     outgoing,
		ReferencedBy:   incoming,
		SharedEntities: shared,
	}
	if related.References == nil {
		related.References = []*model.Reference{}
	}
	if related.ReferencedBy == nil {
		related.ReferencedBy = []*model.Reference{}
	}
	if related.SharedEntities == nil {
		related.SharedEntities = []*model.SharedEntityDoc{}
	}
	return related, nil
}

// ReferenceChain follows outgoing references from a document up to maxHops.
func (e *Engine) ReferenceChain(documentID int64, maxHops int) ([]*ChainResult, error) {
	return Chain(&handlerGraph{documents: e.documents, references: e.references}, documentID, maxHops)
}

// handlerGraph adapts the database handlers to the traversal interface.
type handlerGraph struct {
	documents  *database.DocumentsDBHandler
	references *database.ReferencesDBHandler
}

func (g *handlerGraph) GetDocument(id int64) (*model.Document, error) {
	return g.documents.SelectDocument(id)
}

func (g *handlerGraph) GetReferencesFrom(id int64) ([]*model.Reference, error) {
	return g.references.SelectReferencesFromDocument(id)
}
