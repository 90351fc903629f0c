package pubsub

import (
	"sync"

	"github.com/havenchat/haven/internal/events"
)

// Hub is the central container for all domain brokers.
type Hub struct {
	Session *Broker[events.SessionEvent]
	Turn    *Broker[events.TurnEvent]

	done chan struct{}
}

// NewHub creates a new Hub with all domain brokers initialized.
func NewHub() *Hub {
	return &Hub{
		Session: NewBroker[events.SessionEvent]("session"),
		Turn:    NewBroker[events.TurnEvent]("turn"),
		done:    make(chan struct{}),
	}
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); h.Session.Shutdown() }()
	go func() { defer wg.Done(); h.Turn.Shutdown() }()
	wg.Wait()
}

// IsShutdown returns true if the hub has been shut down.
func (h *Hub) IsShutdown() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
