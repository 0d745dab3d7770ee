package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
)

// AllTypes lists every event type, in declaration order.
var AllTypes = []EventType{
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,
}

// Actor identifies who triggered the change. Empty for anonymous sign-ups.
type Actor struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a change to a user or product document.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID string    `json:"resource_id"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Changed    []string  `json:"changed,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID string, actor Actor, changed ...string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Changed:    changed,
	}
}
