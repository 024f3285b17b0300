package relate

import "github.com/lexgraph/lexgraph/model"

// ReferenceGraph defines the lookups needed to walk the reference graph.
type ReferenceGraph interface {
	GetDocument(id int64) (*model.Document, error)
	GetReferencesFrom(id int64) ([]*model.Reference, error)
}

// ChainResult contains a document and its distance from the source
type ChainResult struct {
	Document *model.Document
	Distance int
	Path     []int64 // Path from source to this document
}

// Chain performs breadth-first search along outgoing references
func Chain(graph ReferenceGraph, sourceID int64, maxHops int) ([]*ChainResult, error) {
	visited := make(map[int64]bool)
	queue := []ChainResult{{
		Document: nil,
		Distance: 0,
		Path:     []int64{sourceID},
	}}

	// Get source document
	sourceDoc, err := graph.GetDocument(sourceID)
	if err != nil {
		return nil, err
	}
	queue[0].Document = sourceDoc

	var results []*ChainResult
	visited[sourceID] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		references, err := graph.GetReferencesFrom(current.Document.ID)
		if err != nil {
			return nil, err
		}

		for _, reference := range references {
			// Skip if already visited
			if visited[reference.TargetID] {
				continue
			}

			targetDoc, err := graph.GetDocument(reference.TargetID)
			if err != nil {
				continue // Skip if document not found
			}

			visited[reference.TargetID] = true

			// Create new path
			newPath := make([]int64, len(current.Path))
			copy(newPath, current.Path)
			newPath = append(newPath, reference.TargetID)

			queue = append(queue, ChainResult{
				Document: targetDoc,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}
