// Package bridge provides the connection between the pub/sub system and Bubble Tea.
package bridge

import (
	"github.com/havenchat/haven/internal/events"
	"github.com/havenchat/haven/internal/pubsub"
)

// SessionEventMsg wraps a session event for the TUI.
type SessionEventMsg struct {
	Event pubsub.Event[events.SessionEvent]
}

// TurnEventMsg wraps a conversation turn event for the TUI.
type TurnEventMsg struct {
	Event pubsub.Event[events.TurnEvent]
}
