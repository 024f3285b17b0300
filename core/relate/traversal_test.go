package relate

import (
	"fmt"
	"testing"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraph is an in-memory reference graph for traversal tests.
type fakeGraph struct {
	documents  map[int64]*model.Document
	references map[int64][]*model.Reference
}

func (g *fakeGraph) GetDocument(id int64) (*model.Document, error) {
	doc, ok := g.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %d not found", id)
	}
	return doc, nil
}

func (g *fakeGraph) GetReferencesFrom(id int64) ([]*model.Reference, error) {
	return g.references[id], nil
}

func newFakeGraph() *fakeGraph {
	graph := &fakeGraph{
		documents:  map[int64]*model.Document{},
		references: map[int64][]*model.Reference{},
	}
	for id := int64(1); id <= 4; id++ {
		graph.documents[id] = &model.Document{ID: id, Name: fmt.Sprintf("doc-%d", id)}
	}
	// 1 -> 2 -> 3, 1 -> 4
	graph.references[1] = []*model.Reference{
		{SourceID: 1, TargetID: 2, Confidence: 0.9},
		{SourceID: 1, TargetID: 4, Confidence: 0.6},
	}
	graph.references[2] = []*model.Reference{
		{SourceID: 2, TargetID: 3, Confidence: 0.9},
	}
	return graph
}

func TestChain(t *testing.T) {
	t.Run("Chain visits reachable documents breadth first", func(t *testing.T) {
		results, err := Chain(newFakeGraph(), 1, 2)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, int64(1), results[0].Document.ID)
		assert.Equal(t, 0, results[0].Distance)

		distances := map[int64]int{}
		for _, result := range results {
			distances[result.Document.ID] = result.Distance
		}
		assert.Equal(t, 1, distances[2])
		assert.Equal(t, 1, distances[4])
		assert.Equal(t, 2, distances[3])
	})

	t.Run("Max hops limits traversal depth", func(t *testing.T) {
		results, err := Chain(newFakeGraph(), 1, 1)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, result := range results {
			assert.LessOrEqual(t, result.Distance, 1)
		}
	})

	t.Run("Path records the route from source", func(t *testing.T) {
		results, err := Chain(newFakeGraph(), 1, 2)
		require.NoError(t, err)
		for _, result := range results {
			if result.Document.ID == 3 {
				assert.Equal(t, []int64{1, 2, 3}, result.Path)
			}
		}
	})

	t.Run("Cycles do not loop", func(t *testing.T) {
		graph := newFakeGraph()
		graph.references[3] = []*model.Reference{{SourceID: 3, TargetID: 1, Confidence: 0.9}}
		results, err := Chain(graph, 1, 10)
		require.NoError(t, err)
		assert.Len(t, results, 4)
	})

	t.Run("Missing source document fails", func(t *testing.T) {
		_, err := Chain(newFakeGraph(), 99, 2)
		assert.Error(t, err)
	})

	t.Run("Missing target documents are skipped", func(t *testing.T) {
		graph := newFakeGraph()
		graph.references[1] = append(graph.references[1], &model.Reference{SourceID: 1, TargetID: 77, Confidence: 0.9})
		results, err := Chain(graph, 1, 2)
		require.NoError(t, err)
		assert.Len(t, results, 4)
	})
}
