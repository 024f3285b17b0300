package database

import (
	"testing"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencesNewReferencesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewReferencesDBHandler", func(t *testing.T) {
		referencesDbHandler, err := NewReferencesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewReferencesDBHandler to not return an error")
		require.NotNil(t, referencesDbHandler, "Expected NewReferencesDBHandler to return a non-nil instance")
	})

	t.Run("Invalid call NewReferencesDBHandler with nil database", func(t *testing.T) {
		_, err := NewReferencesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating ReferencesDBHandler with nil database")
	})
}

func TestReferencesUpsertAndSelect(t *testing.T) {
	database := initDB(t)

	documentsDbHandler, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)
	referencesDbHandler, err := NewReferencesDBHandler(database, true)
	require.NoError(t, err)

	newDoc := func(name string) *model.Document {
		doc := &model.Document{Name: name, Source: "refs.txt", Metadata: map[string]interface{}{}}
		require.NoError(t, documentsDbHandler.InsertDocument(doc))
		t.Cleanup(func() { documentsDbHandler.DeleteDocument(doc.ID) })
		return doc
	}

	motion := newDoc("Motion to Dismiss")
	affidavit := newDoc("Smith Affidavit")
	exhibit := newDoc("Exhibit A")

	t.Run("Insert new reference", func(t *testing.T) {
		ref := &model.Reference{
			SourceID:   motion.ID,
			TargetID:   affidavit.ID,
			Context:    "as described in the Smith Affidavit",
			Confidence: 0.9,
		}

		err := referencesDbHandler.UpsertReference(ref)
		assert.NoError(t, err, "Expected UpsertReference to not return an error")
		assert.NotZero(t, ref.ID, "Expected upserted reference to have an ID")
	})

	t.Run("Upsert keeps highest confidence", func(t *testing.T) {
		weaker := &model.Reference{SourceID: motion.ID, TargetID: affidavit.ID, Context: "partial match", Confidence: 0.6}
		err := referencesDbHandler.UpsertReference(weaker)
		assert.NoError(t, err)
		assert.Equal(t, 0.9, weaker.Confidence, "Expected existing stronger confidence to survive")

		stronger := &model.Reference{SourceID: affidavit.ID, TargetID: exhibit.ID, Context: "partial", Confidence: 0.6}
		require.NoError(t, referencesDbHandler.UpsertReference(stronger))
		stronger = &model.Reference{SourceID: affidavit.ID, TargetID: exhibit.ID, Context: "exact", Confidence: 0.9}
		require.NoError(t, referencesDbHandler.UpsertReference(stronger))
		assert.Equal(t, 0.9, stronger.Confidence, "Expected re-upsert to raise confidence")
	})

	t.Run("Select references from document ordered by confidence", func(t *testing.T) {
		weaker := &model.Reference{SourceID: motion.ID, TargetID: exhibit.ID, Context: "see exhibit", Confidence: 0.6}
		require.NoError(t, referencesDbHandler.UpsertReference(weaker))

		refs, err := referencesDbHandler.SelectReferencesFromDocument(motion.ID)
		assert.NoError(t, err)
		require.Len(t, refs, 2, "Expected both outgoing references")
		assert.Equal(t, affidavit.ID, refs[0].TargetID, "Expected strongest reference first")
		assert.Equal(t, 0.9, refs[0].Confidence)
		assert.Equal(t, exhibit.ID, refs[1].TargetID)
	})

	t.Run("Select references to document", func(t *testing.T) {
		refs, err := referencesDbHandler.SelectReferencesToDocument(exhibit.ID)
		assert.NoError(t, err)
		require.Len(t, refs, 2, "Expected incoming references from motion and affidavit")
		assert.Equal(t, 0.9, refs[0].Confidence, "Expected strongest back-reference first")
	})

	t.Run("Select all references", func(t *testing.T) {
		refs, err := referencesDbHandler.SelectAllReferences()
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(refs), 3, "Expected every inserted edge to be returned")
	})

	t.Run("Delete references from document", func(t *testing.T) {
		err := referencesDbHandler.DeleteReferencesFromDocument(motion.ID)
		assert.NoError(t, err, "Expected DeleteReferencesFromDocument to not return an error")

		refs, err := referencesDbHandler.SelectReferencesFromDocument(motion.ID)
		assert.NoError(t, err)
		assert.Empty(t, refs, "Expected no outgoing references after delete")
	})
}
