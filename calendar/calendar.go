// Package calendar defines the external calendar collaborator used for
// deadline reminders. Syncing is purely additive, there is no update or
// delete contract.
package calendar

import (
	"context"
	"time"
)

// Calendar adds deadline events to an external calendar and returns the
// created event id.
type Calendar interface {
	AddEvent(ctx context.Context, title string, description string, date time.Time, reminderDaysBefore int) (string, error)
}

// Nop is a calendar that drops every event. Used when no calendar
// integration is configured.
type Nop struct{}

// NewNop creates a no-op calendar.
func NewNop() *Nop {
	return &Nop{}
}

// AddEvent discards the event and reports no event id.
func (n *Nop) AddEvent(ctx context.Context, title string, description string, date time.Time, reminderDaysBefore int) (string, error) {
	return "", nil
}
