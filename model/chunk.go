package model

import "time"

// MaxChunkContent bounds the raw text copy kept per document for future
// semantic lookup.
const MaxChunkContent = 8000

// KnowledgeChunk is a truncated copy of a document's text stored in the
// knowledge base. Embedding is populated only when an embedder is configured.
type KnowledgeChunk struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Result fields
	Similarity float64 `json:"similarity,omitempty"`
}

// TruncateChunkContent clips text to MaxChunkContent runes.
func TruncateChunkContent(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxChunkContent {
		return text
	}
	return string(runes[:MaxChunkContent])
}
