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

// DeadlinesDBHandlerFunctions defines the interface for legal-deadline
// database operations.
type DeadlinesDBHandlerFunctions interface {
	InsertDeadline(deadline *model.Deadline) error
	UpdateCalendarEventID(id int64, calendarEventID string) error
	SelectDeadlinesByDocument(documentID int64) ([]*model.Deadline, error)
	SelectUpcomingDeadlines(until time.Time) ([]*model.Deadline, error)
}

// DeadlinesDBHandler handles legal-deadline database operations
type DeadlinesDBHandler struct {
	db *helper.Database
}

// NewDeadlinesDBHandler creates a new deadlines database handler.
// If force is true, it reloads the SQL functions even if they already exist.
func NewDeadlinesDBHandler(db *helper.Database, force bool) (*DeadlinesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &DeadlinesDBHandler{db: db}

	err := loadSql.LoadDeadlinesSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load deadlines sql", err)
	}

	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized DeadlinesDBHandler")

	return handler, nil
}

// CreateTable creates the 'legal_deadlines' table with its indexes if it
// does not exist yet.
func (h *DeadlinesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_legal_deadlines();`)
	if err != nil {
		log.Panicf("error initializing legal_deadlines table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table legal_deadlines")

	return nil
}

// InsertDeadline inserts a new legal deadline
func (h *DeadlinesDBHandler) InsertDeadline(deadline *model.Deadline) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_legal_deadline($1, $2, $3, $4, $5)`,
		deadline.DocumentID,
		deadline.Description,
		deadline.DeadlineDate,
		deadline.ResponseRequired,
		deadline.Type,
	)

	var calendarEventID sql.NullString
	err := row.Scan(
		&deadline.ID,
		&deadline.DocumentID,
		&deadline.Description,
		&deadline.DeadlineDate,
		&deadline.ResponseRequired,
		&deadline.Type,
		&calendarEventID,
		&deadline.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}
	if calendarEventID.Valid {
		deadline.CalendarEventID = &calendarEventID.String
	}

	return nil
}

// UpdateCalendarEventID stores the external calendar event id on a deadline
func (h *DeadlinesDBHandler) UpdateCalendarEventID(id int64, calendarEventID string) error {
	_, err := h.db.Instance.Exec(
		`SELECT update_deadline_calendar_event($1, $2)`,
		id,
		calendarEventID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// SelectDeadlinesByDocument retrieves a document's deadlines in date order
func (h *DeadlinesDBHandler) SelectDeadlinesByDocument(documentID int64) ([]*model.Deadline, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_deadlines_by_document($1)`,
		documentID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanDeadlines(rows)
}

// SelectUpcomingDeadlines retrieves deadlines due between now and until
func (h *DeadlinesDBHandler) SelectUpcomingDeadlines(until time.Time) ([]*model.Deadline, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_upcoming_deadlines($1)`,
		until,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	return scanDeadlines(rows)
}

func scanDeadlines(rows *sql.Rows) ([]*model.Deadline, error) {
	var deadlines []*model.Deadline
	for rows.Next() {
		deadline := &model.Deadline{}
		var calendarEventID sql.NullString
		err := rows.Scan(
			&deadline.ID,
			&deadline.DocumentID,
			&deadline.Description,
			&deadline.DeadlineDate,
			&deadline.ResponseRequired,
			&deadline.Type,
			&calendarEventID,
			&deadline.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		if calendarEventID.Valid {
			deadline.CalendarEventID = &calendarEventID.String
		}

		deadlines = append(deadlines, deadline)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return deadlines, nil
}
