package database

import (
	"testing"
	"time"

	"github.com/lexgraph/lexgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlinesNewDeadlinesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewDeadlinesDBHandler", func(t *testing.T) {
		deadlinesDbHandler, err := NewDeadlinesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewDeadlinesDBHandler to not return an error")
		require.NotNil(t, deadlinesDbHandler, "Expected NewDeadlinesDBHandler to return a non-nil instance")
	})

	t.Run("Invalid call NewDeadlinesDBHandler with nil database", func(t *testing.T) {
		_, err := NewDeadlinesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating DeadlinesDBHandler with nil database")
	})
}

func TestDeadlinesInsertAndSelect(t *testing.T) {
	database := initDB(t)

	documentsDbHandler, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)
	deadlinesDbHandler, err := NewDeadlinesDBHandler(database, true)
	require.NoError(t, err)

	doc := &model.Document{Name: "Deadline Motion", Source: "deadlines.txt", Metadata: map[string]interface{}{}}
	require.NoError(t, documentsDbHandler.InsertDocument(doc))
	t.Cleanup(func() { documentsDbHandler.DeleteDocument(doc.ID) })

	soon := time.Now().UTC().AddDate(0, 0, 5).Truncate(time.Second)
	later := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Second)

	deadline := &model.Deadline{
		DocumentID:       doc.ID,
		Description:      "Response due by " + soon.Format("January 2, 2006"),
		DeadlineDate:     soon,
		ResponseRequired: true,
		Type:             "Response",
	}

	t.Run("Insert new deadline", func(t *testing.T) {
		err := deadlinesDbHandler.InsertDeadline(deadline)
		assert.NoError(t, err, "Expected InsertDeadline to not return an error")
		assert.NotZero(t, deadline.ID, "Expected inserted deadline to have an ID")
		assert.Nil(t, deadline.CalendarEventID, "Expected no calendar event id on insert")
	})

	t.Run("Update calendar event id", func(t *testing.T) {
		err := deadlinesDbHandler.UpdateCalendarEventID(deadline.ID, "cal-event-123")
		assert.NoError(t, err, "Expected UpdateCalendarEventID to not return an error")

		deadlines, err := deadlinesDbHandler.SelectDeadlinesByDocument(doc.ID)
		assert.NoError(t, err)
		require.Len(t, deadlines, 1)
		require.NotNil(t, deadlines[0].CalendarEventID, "Expected calendar event id to be set")
		assert.Equal(t, "cal-event-123", *deadlines[0].CalendarEventID)
	})

	t.Run("Select deadlines by document in date order", func(t *testing.T) {
		second := &model.Deadline{
			DocumentID:   doc.ID,
			Description:  "Trial set for " + later.Format("January 2, 2006"),
			DeadlineDate: later,
			Type:         "Trial",
		}
		require.NoError(t, deadlinesDbHandler.InsertDeadline(second))

		deadlines, err := deadlinesDbHandler.SelectDeadlinesByDocument(doc.ID)
		assert.NoError(t, err)
		require.Len(t, deadlines, 2, "Expected both deadlines for the document")
		assert.Equal(t, "Response", deadlines[0].Type, "Expected soonest deadline first")
		assert.Equal(t, "Trial", deadlines[1].Type)
	})

	t.Run("Select upcoming deadlines respects cutoff", func(t *testing.T) {
		upcoming, err := deadlinesDbHandler.SelectUpcomingDeadlines(time.Now().UTC().AddDate(0, 0, 10))
		assert.NoError(t, err)
		require.Len(t, upcoming, 1, "Expected only the deadline within ten days")
		assert.Equal(t, deadline.ID, upcoming[0].ID)

		all, err := deadlinesDbHandler.SelectUpcomingDeadlines(time.Now().UTC().AddDate(0, 2, 0))
		assert.NoError(t, err)
		assert.Len(t, all, 2, "Expected both deadlines within two months")
	})
}
