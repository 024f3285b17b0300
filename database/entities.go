package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
	loadSql "github.com/lexgraph/lexgraph/sql"
)

// EntitiesDBHandlerFunctions defines the interface for entity and
// document-entity link operations.
type EntitiesDBHandlerFunctions interface {
	UpsertEntity(entity *model.Entity) error
	SelectEntity(id int64) (*model.Entity, error)
	SelectEntityByName(name string, entityType model.EntityType) (*model.Entity, error)
	SelectEntitiesByDocument(documentID int64) ([]*model.Entity, error)
	LinkDocumentEntity(link *model.DocumentEntityLink) error
	SelectSharedEntityDocuments(documentID int64, limit int) ([]*model.SharedEntityDoc, error)
}

// EntitiesDBHandler handles entity-related database operations
type EntitiesDBHandler struct {
	db *helper.Database
}

// NewEntitiesDBHandler creates a new entities database handler.
// If force is true, it reloads the SQL functions even if they already exist.
func NewEntitiesDBHandler(db *helper.Database, force bool) (*EntitiesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &EntitiesDBHandler{db: db}

	err := loadSql.LoadEntitiesSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load entities sql", err)
	}

	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EntitiesDBHandler")

	return handler, nil
}

// CreateTable creates the 'case_entities' and 'document_entities' tables
// with their indexes if they do not exist yet.
func (h *EntitiesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_case_entities();`)
	if err != nil {
		log.Panicf("error initializing case_entities tables: %#v", err)
	}

	h.db.Logger.Info("Checked/created tables case_entities, document_entities")

	return nil
}

// UpsertEntity inserts an entity or, when (name, type) already exists, adds
// the new importance onto the stored row. The accumulation happens inside
// the SQL function, so concurrent extraction passes never lose updates.
func (h *EntitiesDBHandler) UpsertEntity(entity *model.Entity) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_case_entity($1, $2, $3, $4)`,
		entity.Name,
		entity.Type,
		entity.Importance,
		entity.Context,
	)

	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Type,
		&entity.Importance,
		&entity.Context,
		&entity.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEntity retrieves an entity by ID
func (h *EntitiesDBHandler) SelectEntity(id int64) (*model.Entity, error) {
	entity := &model.Entity{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_case_entity($1)`,
		id,
	)

	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Type,
		&entity.Importance,
		&entity.Context,
		&entity.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return entity, nil
}

// SelectEntityByName retrieves an entity by name and type
func (h *EntitiesDBHandler) SelectEntityByName(name string, entityType model.EntityType) (*model.Entity, error) {
	entity := &model.Entity{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_case_entity_by_name($1, $2)`,
		name,
		entityType,
	)

	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Type,
		&entity.Importance,
		&entity.Context,
		&entity.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return entity, nil
}

// SelectEntitiesByDocument retrieves all entities linked to a document,
// most important first.
func (h *EntitiesDBHandler) SelectEntitiesByDocument(documentID int64) ([]*model.Entity, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_entities_by_document($1)`,
		documentID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		entity := &model.Entity{}
		err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Type,
			&entity.Importance,
			&entity.Context,
			&entity.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		entities = append(entities, entity)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return entities, nil
}

// LinkDocumentEntity links an entity to a document. Keyed
// (document_id, entity_id); relinking refreshes the context.
func (h *EntitiesDBHandler) LinkDocumentEntity(link *model.DocumentEntityLink) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM link_document_entity($1, $2, $3)`,
		link.DocumentID,
		link.EntityID,
		link.Context,
	)

	err := row.Scan(
		&link.DocumentID,
		&link.EntityID,
		&link.Context,
		&link.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectSharedEntityDocuments retrieves documents that share at least one
// entity with the given document, ranked by shared-entity count descending.
func (h *EntitiesDBHandler) SelectSharedEntityDocuments(documentID int64, limit int) ([]*model.SharedEntityDoc, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_shared_entity_documents($1, $2)`,
		documentID,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var docs []*model.SharedEntityDoc
	for rows.Next() {
		doc := &model.SharedEntityDoc{}
		err := rows.Scan(
			&doc.DocumentID,
			&doc.Name,
			&doc.SharedCount,
			pq.Array(&doc.EntityNames),
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		docs = append(docs, doc)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return docs, nil
}
