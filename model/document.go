package model

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Document represents a case document whose extracted text feeds the
// knowledge-extraction pipeline. Content is only carried through processing
// and never stored in the documents table itself.
type Document struct {
	ID        int64     `json:"id"`
	RID       uuid.UUID `json:"rid"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	Content   string    `json:"content,omitempty" db:"-"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentName is the (id, name) projection the reference resolver scans
// a document's text against.
type DocumentName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewDocumentFromFile reads a file and creates a Document with the file content.
// The name defaults to the filename without extension, the source to the path.
func NewDocumentFromFile(filePath string, metadata Metadata) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	name := filename[:len(filename)-len(filepath.Ext(filename))]
	if name == "" {
		name = filename
	}

	return &Document{
		Name:     name,
		Source:   filePath,
		Content:  string(content),
		Metadata: metadata,
	}, nil
}
