package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/model"
	loadSql "github.com/lexgraph/lexgraph/sql"
)

// EventsDBHandlerFunctions defines the interface for timeline-event database
// operations.
type EventsDBHandlerFunctions interface {
	InsertEvent(event *model.TimelineEvent) error
	SelectEventsByDocument(documentID int64) ([]*model.TimelineEvent, error)
	SelectEventsBetween(from, to time.Time) ([]*model.TimelineEvent, error)
	DeleteEventsByDocument(documentID int64) error
}

// EventsDBHandler handles timeline-event database operations
type EventsDBHandler struct {
	db *helper.Database
}

// NewEventsDBHandler creates a new timeline-events database handler.
// If force is true, it reloads the SQL functions even if they already exist.
func NewEventsDBHandler(db *helper.Database, force bool) (*EventsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &EventsDBHandler{db: db}

	err := loadSql.LoadEventsSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load events sql", err)
	}

	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EventsDBHandler")

	return handler, nil
}

// CreateTable creates the 'timeline_events' table with its indexes if it
// does not exist yet.
func (h *EventsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_timeline_events();`)
	if err != nil {
		log.Panicf("error initializing timeline_events table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table timeline_events")

	return nil
}

// InsertEvent inserts a new timeline event
func (h *EventsDBHandler) InsertEvent(event *model.TimelineEvent) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_timeline_event($1, $2, $3, $4, $5, $6)`,
		event.DocumentID,
		event.EventType,
		event.Date,
		event.Description,
		event.Importance,
		event.Context,
	)

	err := row.Scan(
		&event.ID,
		&event.DocumentID,
		&event.EventType,
		&event.Date,
		&event.Description,
		&event.Importance,
		&event.Context,
		&event.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEventsByDocument retrieves a document's timeline events in date order
func (h *EventsDBHandler) SelectEventsByDocument(documentID int64) ([]*model.TimelineEvent, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_timeline_events_by_document($1)`,
		documentID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// SelectEventsBetween retrieves events in [from, to) across all documents
func (h *EventsDBHandler) SelectEventsBetween(from, to time.Time) ([]*model.TimelineEvent, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_timeline_events_between($1, $2)`,
		from,
		to,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// DeleteEventsByDocument removes a document's timeline events, used before a
// full re-scan.
func (h *EventsDBHandler) DeleteEventsByDocument(documentID int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_timeline_events_by_document($1)`,
		documentID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]*model.TimelineEvent, error) {
	var events []*model.TimelineEvent
	for rows.Next() {
		event := &model.TimelineEvent{}
		err := rows.Scan(
			&event.ID,
			&event.DocumentID,
			&event.EventType,
			&event.Date,
			&event.Description,
			&event.Importance,
			&event.Context,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		events = append(events, event)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return events, nil
}
