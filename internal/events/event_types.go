package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEntityLoaded  EventType = "entity_loaded"
	EventEntityCreated EventType = "entity_created"
	EventEntityUpdated EventType = "entity_updated"
	EventEntityDeleted EventType = "entity_deleted"
	EventRequestFailed EventType = "request_failed"
)

// Event represents a change applied to (or refused by) an entity store.
type Event struct {
	Type      EventType   `json:"type"`
	Resource  string      `json:"resource"`
	Command   string      `json:"command"`
	EntityID  string      `json:"entity_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoadedPayload payload.
type LoadedPayload struct {
	Count int `json:"count"`
}

// RequestFailedPayload payload.
type RequestFailedPayload struct {
	Message string `json:"message"`
}
