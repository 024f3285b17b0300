package model

import "time"

// Deadline represents an actionable, future-or-recent due date found in a
// document. Dates older than two days before extraction time are discarded
// as stale matches; recent past filings are allowed through.
type Deadline struct {
	ID               int64     `json:"id"`
	DocumentID       int64     `json:"document_id"`
	Description      string    `json:"description"`
	DeadlineDate     time.Time `json:"deadline_date"`
	ResponseRequired bool      `json:"response_required"`
	Type             string    `json:"type"`
	CalendarEventID  *string   `json:"calendar_event_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ReminderDaysBefore returns the calendar reminder lead time for the
// deadline: between one and three days depending on how soon it is due.
func (d *Deadline) ReminderDaysBefore(now time.Time) int {
	days := int(d.DeadlineDate.Sub(now).Hours() / 24)
	if days < 1 {
		return 1
	}
	if days > 3 {
		return 3
	}
	return days
}
