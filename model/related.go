package model

// SharedEntityDoc is a document related through entities it has in common
// with the queried document.
type SharedEntityDoc struct {
	DocumentID  int64    `json:"document_id"`
	Name        string   `json:"name"`
	SharedCount int      `json:"shared_count"`
	EntityNames []string `json:"entity_names,omitempty"`
}

// RelatedDocuments holds the three relationship views for a document:
// documents it cites, documents citing it, and documents topically related
// through shared entities. All three may be empty but are never nil.
type RelatedDocuments struct {
	References     []*Reference       `json:"references"`
	ReferencedBy   []*Reference       `json:"referenced_by"`
	SharedEntities []*SharedEntityDoc `json:"shared_entities"`
}
