package extract

import (
	"testing"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindReferences(t *testing.T) {
	roster := []*model.DocumentName{
		{ID: 1, Name: "Smith Affidavit"},
		{ID: 2, Name: "Motion to Dismiss"},
		{ID: 3, Name: "Memo"},
	}
	resolver := NewResolver(roster)

	t.Run("Exact name match scores high confidence", func(t *testing.T) {
		references := resolver.FindReferences(2, "As stated in the Smith Affidavit, service was proper.")
		require.Len(t, references, 1)
		assert.Equal(t, int64(1), references[0].TargetID)
		assert.Equal(t, model.ConfidenceExactMatch, references[0].Confidence)
		assert.Contains(t, references[0].Context, "Smith Affidavit")
	})

	t.Run("Exact match is case insensitive", func(t *testing.T) {
		references := resolver.FindReferences(2, "see the SMITH AFFIDAVIT for details")
		require.Len(t, references, 1)
		assert.Equal(t, model.ConfidenceExactMatch, references[0].Confidence)
	})

	t.Run("Partial word match scores lower confidence", func(t *testing.T) {
		references := resolver.FindReferences(2, "The attached Affidavit supports the claim.")
		require.Len(t, references, 1)
		assert.Equal(t, int64(1), references[0].TargetID)
		assert.Equal(t, model.ConfidencePartialMatch, references[0].Confidence)
	})

	t.Run("Exact match short-circuits partial", func(t *testing.T) {
		references := resolver.FindReferences(2, "The Smith Affidavit and another Affidavit were filed.")
		require.Len(t, references, 1)
		assert.Equal(t, model.ConfidenceExactMatch, references[0].Confidence)
	})

	t.Run("Short name words do not trigger partial matches", func(t *testing.T) {
		references := resolver.FindReferences(1, "The parties agreed to a continuance.")
		assert.Empty(t, references, "words of 5 or fewer characters should not match partially")
	})

	t.Run("Source document is never referenced", func(t *testing.T) {
		references := resolver.FindReferences(1, "The Smith Affidavit speaks for itself.")
		assert.Empty(t, references)
	})

	t.Run("Short document names are skipped", func(t *testing.T) {
		references := resolver.FindReferences(1, "Per the Memo dated yesterday.")
		assert.Empty(t, references)
	})

	t.Run("Substring inside a longer word is not a match", func(t *testing.T) {
		references := resolver.FindReferences(2, "The Affidavits folder was empty.")
		assert.Empty(t, references)
	})
}
