package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
	loadSql "github.com/lexgraph/lexgraph/sql"
)

// ReferencesDBHandlerFunctions defines the interface for document-reference
// database operations.
type ReferencesDBHandlerFunctions interface {
	UpsertReference(ref *model.Reference) error
	SelectReferencesFromDocument(documentID int64) ([]*model.Reference, error)
	SelectReferencesToDocument(documentID int64) ([]*model.Reference, error)
	SelectAllReferences() ([]*model.Reference, error)
	DeleteReferencesFromDocument(documentID int64) error
}

// ReferencesDBHandler handles document-reference database operations
type ReferencesDBHandler struct {
	db *helper.Database
}

// NewReferencesDBHandler creates a new references database handler.
// If force is true, it reloads the SQL functions even if they already exist.
func NewReferencesDBHandler(db *helper.Database, force bool) (*ReferencesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &ReferencesDBHandler{db: db}

	err := loadSql.LoadReferencesSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load references sql", err)
	}

	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ReferencesDBHandler")

	return handler, nil
}

// CreateTable creates the 'document_references' table with its indexes if it
// does not exist yet.
func (h *ReferencesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_document_references();`)
	if err != nil {
		log.Panicf("error initializing document_references table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table document_references")

	return nil
}

// UpsertReference inserts a reference edge, keeping the highest-confidence
// match for an existing (source, target) pair.
func (h *ReferencesDBHandler) UpsertReference(ref *model.Reference) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_document_reference($1, $2, $3, $4)`,
		ref.SourceID,
		ref.TargetID,
		ref.Context,
		ref.Confidence,
	)

	err := row.Scan(
		&ref.ID,
		&ref.SourceID,
		&ref.TargetID,
		&ref.Context,
		&ref.Confidence,
		&ref.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectReferencesFromDocument retrieves outgoing references ordered by
// confidence descending.
func (h *ReferencesDBHandler) SelectReferencesFromDocument(documentID int64) ([]*model.Reference, error) {
	return h.selectReferences(`SELECT * FROM select_references_from_document($1)`, documentID)
}

// SelectReferencesToDocument retrieves incoming back-references ordered by
// confidence descending.
func (h *ReferencesDBHandler) SelectReferencesToDocument(documentID int64) ([]*model.Reference, error) {
	return h.selectReferences(`SELECT * FROM select_references_to_document($1)`, documentID)
}

// SelectAllReferences retrieves every reference edge, used to build the
// in-memory reference graph for traversal.
func (h *ReferencesDBHandler) SelectAllReferences() ([]*model.Reference, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_references()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

// DeleteReferencesFromDocument removes all outgoing references of a document
func (h *ReferencesDBHandler) DeleteReferencesFromDocument(documentID int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_references_from_document($1)`,
		documentID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *ReferencesDBHandler) selectReferences(query string, documentID int64) ([]*model.Reference, error) {
	rows, err := h.db.Instance.Query(query, documentID)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanReferences(rows)
}

func scanReferences(rows *sql.Rows) ([]*model.Reference, error) {
	var refs []*model.Reference
	for rows.Next() {
		ref := &model.Reference{}
		err := rows.Scan(
			&ref.ID,
			&ref.SourceID,
			&ref.TargetID,
			&ref.Context,
			&ref.Confidence,
			&ref.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		refs = append(refs, ref)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return refs, nil
}
