package types

import "time"

// UserEventType names a change to a user record.
type UserEventType string

const (
	UserCreated UserEventType = "user.created"
	UserUpdated UserEventType = "user.updated"
	UserDeleted UserEventType = "user.deleted"
)

// UserEvent is published after a successful write.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	User       User          `json:"user"`
	OccurredAt time.Time     `json:"occurred_at"`
}
