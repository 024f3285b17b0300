// Package sql loads the embedded SQL function files the database handlers
// depend on.
package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed documents.sql
var documentsSQL string

//go:embed entities.sql
var entitiesSQL string

//go:embed references.sql
var referencesSQL string

//go:embed events.sql
var eventsSQL string

//go:embed deadlines.sql
var deadlinesSQL string

//go:embed chunks.sql
var chunksSQL string

// Function lists for verification
var DocumentsFunctions = []string{
	"init_documents",
	"insert_document",
	"select_document",
	"select_document_by_rid",
	"select_all_document_names",
	"update_document",
	"delete_document",
}

var EntitiesFunctions = []string{
	"init_case_entities",
	"upsert_case_entity",
	"select_case_entity",
	"select_case_entity_by_name",
	"select_entities_by_document",
	"link_document_entity",
	"select_shared_entity_documents",
}

var ReferencesFunctions = []string{
	"init_document_references",
	"upsert_document_reference",
	"select_references_from_document",
	"select_references_to_document",
	"select_all_references",
	"delete_references_from_document",
}

var EventsFunctions = []string{
	"init_timeline_events",
	"insert_timeline_event",
	"select_timeline_events_by_document",
	"select_timeline_events_between",
	"delete_timeline_events_by_document",
}

var DeadlinesFunctions = []string{
	"init_legal_deadlines",
	"insert_legal_deadline",
	"update_deadline_calendar_event",
	"select_deadlines_by_document",
	"select_upcoming_deadlines",
}

var ChunksFunctions = []string{
	"init_case_knowledge",
	"insert_knowledge_chunk",
	"select_knowledge_by_document",
	"select_all_knowledge",
	"select_knowledge_by_similarity",
}

// Init initializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadDocumentsSql loads document-related SQL functions
func LoadDocumentsSql(db *sql.DB, force bool) error {
	return load(db, force, documentsSQL, DocumentsFunctions, "documents")
}

// LoadEntitiesSql loads entity- and link-related SQL functions
func LoadEntitiesSql(db *sql.DB, force bool) error {
	return load(db, force, entitiesSQL, EntitiesFunctions, "entities")
}

// LoadReferencesSql loads reference-related SQL functions
func LoadReferencesSql(db *sql.DB, force bool) error {
	return load(db, force, referencesSQL, ReferencesFunctions, "references")
}

// LoadEventsSql loads timeline-event SQL functions
func LoadEventsSql(db *sql.DB, force bool) error {
	return load(db, force, eventsSQL, EventsFunctions, "events")
}

// LoadDeadlinesSql loads deadline SQL functions
func LoadDeadlinesSql(db *sql.DB, force bool) error {
	return load(db, force, deadlinesSQL, DeadlinesFunctions, "deadlines")
}

// LoadChunksSql loads knowledge-chunk SQL functions
func LoadChunksSql(db *sql.DB, force bool) error {
	return load(db, force, chunksSQL, ChunksFunctions, "chunks")
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadDocumentsSql(db, force); err != nil {
		return err
	}
	if err := LoadEntitiesSql(db, force); err != nil {
		return err
	}
	if err := LoadReferencesSql(db, force); err != nil {
		return err
	}
	if err := LoadEventsSql(db, force); err != nil {
		return err
	}
	if err := LoadDeadlinesSql(db, force); err != nil {
		return err
	}
	return LoadChunksSql(db, force)
}

func load(db *sql.DB, force bool, sqlText string, functions []string, name string) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(sqlText)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required %s SQL functions were created", name)
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
