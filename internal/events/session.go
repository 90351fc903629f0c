// Package events defines the domain event payloads published on the hub.
package events

import "time"

// SessionEventType represents session-specific event types.
type SessionEventType string

// Session event type constants.
const (
	SessionEventCreated       SessionEventType = "created"
	SessionEventDeleted       SessionEventType = "deleted"
	SessionEventSwitched      SessionEventType = "switched"
	SessionEventRenamed       SessionEventType = "renamed"
	SessionEventMessagesAdded SessionEventType = "messages_added"
)

// SessionEvent represents a session lifecycle event.
type SessionEvent struct {
	SessionID string
	Title     string
	Type      SessionEventType
	Timestamp time.Time
}

// NewSessionCreatedEvent creates a session created event.
func NewSessionCreatedEvent(id, title string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Title:     title,
		Type:      SessionEventCreated,
		Timestamp: time.Now(),
	}
}

// NewSessionDeletedEvent creates a session deleted event.
func NewSessionDeletedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventDeleted,
		Timestamp: time.Now(),
	}
}

// NewSessionSwitchedEvent creates a session switched event.
func NewSessionSwitchedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventSwitched,
		Timestamp: time.Now(),
	}
}

// NewSessionRenamedEvent creates a session renamed event.
func NewSessionRenamedEvent(id, title string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Title:     title,
		Type:      SessionEventRenamed,
		Timestamp: time.Now(),
	}
}

// NewSessionMessagesAddedEvent creates a messages added event.
func NewSessionMessagesAddedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventMessagesAdded,
		Timestamp: time.Now(),
	}
}
