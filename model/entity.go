package model

import "time"

// EntityType classifies a recognized entity
type EntityType string

const (
	EntityTypePerson       EntityType = "person"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeDate         EntityType = "date"
	EntityTypeCaseNumber   EntityType = "case_number"
	EntityTypeAddress      EntityType = "address"
	EntityTypeMoney        EntityType = "money"
)

// Entity represents a named thing recognized in document text.
// Identity within a case is (Name, Type); repeated mentions accumulate
// Importance on the stored row.
type Entity struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Type       EntityType `json:"entity_type"`
	Importance int        `json:"importance"`
	Context    string     `json:"context,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DocumentEntityLink associates a document with an entity mentioned in it.
// Keyed (document_id, entity_id), upserted on re-extraction.
type DocumentEntityLink struct {
	DocumentID int64     `json:"document_id"`
	EntityID   int64     `json:"entity_id"`
	Context    string    `json:"context,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
