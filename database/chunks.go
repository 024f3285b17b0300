package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
	loadSql "github.com/lexgraph/lexgraph/sql"
)

// ChunksDBHandlerFunctions defines the interface for knowledge-chunk
// database operations.
type ChunksDBHandlerFunctions interface {
	InsertChunk(chunk *model.KnowledgeChunk) error
	SelectChunksByDocument(documentID int64) ([]*model.KnowledgeChunk, error)
	SelectAllChunks() ([]*model.KnowledgeChunk, error)
	SelectChunksBySimilarity(embedding []float32, limit int) ([]*model.KnowledgeChunk, error)
}

// ChunksDBHandler handles knowledge-chunk database operations
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new knowledge-chunk database handler. The
// embedding dimension fixes the vector column type at table creation.
// If force is true, it reloads the SQL functions even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &ChunksDBHandler{db: db}

	err := loadSql.LoadChunksSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = handler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler")

	return handler, nil
}

// CreateTable creates the 'case_knowledge' table with its indexes if it does
// not exist yet.
func (h *ChunksDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_case_knowledge($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing case_knowledge table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table case_knowledge")

	return nil
}

// InsertChunk inserts a knowledge chunk; the embedding may be nil
func (h *ChunksDBHandler) InsertChunk(chunk *model.KnowledgeChunk) error {
	var embedding interface{}
	if chunk.Embedding != nil {
		embedding = pgvector.NewVector(chunk.Embedding)
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_knowledge_chunk($1, $2, $3)`,
		chunk.DocumentID,
		chunk.Content,
		embedding,
	)

	var stored sql.Null[pgvector.Vector]
	err := row.Scan(
		&chunk.ID,
		&chunk.DocumentID,
		&chunk.Content,
		&stored,
		&chunk.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}
	if stored.Valid {
		chunk.Embedding = stored.V.Slice()
	}

	return nil
}

// SelectChunksByDocument retrieves a document's knowledge chunks, newest first
func (h *ChunksDBHandler) SelectChunksByDocument(documentID int64) ([]*model.KnowledgeChunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_knowledge_by_document($1)`,
		documentID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// SelectAllChunks retrieves every knowledge chunk, used by document clustering
func (h *ChunksDBHandler) SelectAllChunks() ([]*model.KnowledgeChunk, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_knowledge()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// SelectChunksBySimilarity performs cosine-similarity search over embedded
// chunks.
func (h *ChunksDBHandler) SelectChunksBySimilarity(embedding []float32, limit int) ([]*model.KnowledgeChunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_knowledge_by_similarity($1, $2)`,
		pgvector.NewVector(embedding),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.KnowledgeChunk
	for rows.Next() {
		chunk := &model.KnowledgeChunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.Content,
			&chunk.CreatedAt,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

func scanChunks(rows *sql.Rows) ([]*model.KnowledgeChunk, error) {
	var chunks []*model.KnowledgeChunk
	for rows.Next() {
		chunk := &model.KnowledgeChunk{}
		var embedding sql.Null[pgvector.Vector]
		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.Content,
			&embedding,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		if embedding.Valid {
			chunk.Embedding = embedding.V.Slice()
		}

		chunks = append(chunks, chunk)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}
