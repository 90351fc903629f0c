package events

import "time"

// TurnEventType represents conversation turn event types.
type TurnEventType string

// Turn event type constants.
const (
	TurnEventStarted  TurnEventType = "started"
	TurnEventReply    TurnEventType = "reply"
	TurnEventCrisis   TurnEventType = "crisis"
	TurnEventFailed   TurnEventType = "failed"
	TurnEventFinished TurnEventType = "finished"
)

// TurnEvent represents progress of one conversation turn.
type TurnEvent struct {
	SessionID string
	Type      TurnEventType
	Chips     []string // Quick-reply suggestions extracted from the reply
	Timestamp time.Time
}

// NewTurnStartedEvent creates a turn started event.
func NewTurnStartedEvent(sessionID string) TurnEvent {
	return TurnEvent{
		SessionID: sessionID,
		Type:      TurnEventStarted,
		Timestamp: time.Now(),
	}
}

// NewTurnReplyEvent creates a reply event carrying the extracted chips.
func NewTurnReplyEvent(sessionID string, chips []string) TurnEvent {
	return TurnEvent{
		SessionID: sessionID,
		Type:      TurnEventReply,
		Chips:     chips,
		Timestamp: time.Now(),
	}
}

// NewTurnCrisisEvent creates a crisis short-circuit event.
func NewTurnCrisisEvent(sessionID string) TurnEvent {
	return TurnEvent{
		SessionID: sessionID,
		Type:      TurnEventCrisis,
		Timestamp: time.Now(),
	}
}

// NewTurnFailedEvent creates a turn failed event.
func NewTurnFailedEvent(sessionID string) TurnEvent {
	return TurnEvent{
		SessionID: sessionID,
		Type:      TurnEventFailed,
		Timestamp: time.Now(),
	}
}

// NewTurnFinishedEvent creates a turn finished event.
func NewTurnFinishedEvent(sessionID string) TurnEvent {
	return TurnEvent{
		SessionID: sessionID,
		Type:      TurnEventFinished,
		Timestamp: time.Now(),
	}
}
