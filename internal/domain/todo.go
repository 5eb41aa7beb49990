package domain

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a todo.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusDone        Status = "DONE"
	StatusReminderDue Status = "REMINDER_DUE"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDone, StatusReminderDue:
		return Status(s), nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

// Domain entity: the business object, independent of Gin and Redis.
// RemindAt nil means the todo never participates in reminder sweeps.
type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	RemindAt    *time.Time
	Deleted     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
