package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineScanner(t *testing.T) {
	scanner := NewDeadlineScanner(nil)
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Absolute due date with response required", func(t *testing.T) {
		deadlines := scanner.Extract(1, "Response due by March 20, 2024.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, 20, deadlines[0].DeadlineDate.Day())
		assert.True(t, deadlines[0].ResponseRequired)
		assert.Equal(t, "Response", deadlines[0].Type)
	})

	t.Run("Relative respond within days", func(t *testing.T) {
		deadlines := scanner.Extract(1, "Defendant must respond within 30 days of service.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, now.AddDate(0, 0, 30), deadlines[0].DeadlineDate)
		assert.True(t, deadlines[0].ResponseRequired)
	})

	t.Run("Stale deadlines are discarded", func(t *testing.T) {
		deadlines := scanner.Extract(1, "The brief must be filed by January 5, 2020.", now)
		assert.Empty(t, deadlines)
	})

	t.Run("Recently passed deadline within grace survives", func(t *testing.T) {
		deadlines := scanner.Extract(1, "The answer must be filed by March 9, 2024.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, 9, deadlines[0].DeadlineDate.Day())
	})

	t.Run("No later than pattern", func(t *testing.T) {
		deadlines := scanner.Extract(1, "Discovery closes no later than May 1, 2024 per the order.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, "Discovery", deadlines[0].Type)
		assert.Equal(t, time.May, deadlines[0].DeadlineDate.Month())
	})

	t.Run("Deadline label pattern", func(t *testing.T) {
		deadlines := scanner.Extract(1, "Deadline: April 15, 2024 for expert disclosures.", now)
		require.Len(t, deadlines, 1)
		assert.False(t, deadlines[0].ResponseRequired)
		assert.Equal(t, "Other", deadlines[0].Type)
	})

	t.Run("Expiry pattern", func(t *testing.T) {
		deadlines := scanner.Extract(1, "The subpoena expires on June 30, 2024 at midnight.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, "Subpoena", deadlines[0].Type)
	})

	t.Run("Type defaults to Other without vocabulary hit", func(t *testing.T) {
		deadlines := scanner.Extract(1, "Payment is due on April 2, 2024 without exception.", now)
		require.Len(t, deadlines, 1)
		assert.Equal(t, "Other", deadlines[0].Type)
	})

	t.Run("No deadline patterns yields empty", func(t *testing.T) {
		deadlines := scanner.Extract(1, "This paragraph only recites background facts.", now)
		assert.Empty(t, deadlines)
	})
}
