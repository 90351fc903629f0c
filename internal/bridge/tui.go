package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/pubsub"
)

// TUIBridge subscribes to all Hub brokers and forwards events to tea.Program.
// It handles the conversion from domain events to Bubble Tea messages.
type TUIBridge struct {
	hub     *pubsub.Hub
	program *tea.Program

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(hub *pubsub.Hub, program *tea.Program) *TUIBridge {
	return &TUIBridge{
		hub:     hub,
		program: program,
	}
}

// Start begins forwarding events to the TUI.
// Call Stop() to gracefully shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(2)
	go b.subscribeSession()
	go b.subscribeTurn()

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop gracefully shuts down the bridge.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeSession() {
	defer b.wg.Done()

	events := b.hub.Session.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			b.program.Send(SessionEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeTurn() {
	defer b.wg.Done()

	events := b.hub.Turn.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			b.program.Send(TurnEventMsg{Event: event})
		}
	}
}
