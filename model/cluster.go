package model

import "github.com/google/uuid"

// ClusteredDocument is a cluster member with its mean similarity to the
// other members.
type ClusteredDocument struct {
	DocumentID int64   `json:"id"`
	Similarity float64 `json:"similarity"`
}

// DocumentCluster groups topically similar documents discovered by TF-IDF
// similarity over their stored knowledge chunks.
type DocumentCluster struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Keywords    []string            `json:"keywords"`
	Documents   []ClusteredDocument `json:"documents"`
}
