package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerSubscribePublish(t *testing.T) {
	t.Run("single subscriber receives events", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, "hello")

		select {
		case event := <-events:
			if event.Type != EventCreated || event.Payload != "hello" {
				t.Errorf("unexpected event: %+v", event)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for event")
		}
	})

	t.Run("multiple subscribers receive same event", func(t *testing.T) {
		broker := NewBroker[int]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Publish(EventUpdated, 42)

		for i, sub := range []<-chan Event[int]{sub1, sub2} {
			select {
			case event := <-sub:
				if event.Payload != 42 {
					t.Errorf("subscriber %d: expected 42, got %d", i, event.Payload)
				}
			case <-time.After(100 * time.Millisecond):
				t.Errorf("subscriber %d: timeout", i)
			}
		}
	})

	t.Run("cancelled context unsubscribes", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())

		events := broker.Subscribe(ctx)

		if broker.SubscriberCount() != 1 {
			t.Errorf("expected 1 subscriber, got %d", broker.SubscriberCount())
		}

		cancel()
		time.Sleep(50 * time.Millisecond) // Allow cleanup goroutine to run

		if broker.SubscriberCount() != 0 {
			t.Errorf("expected 0 subscribers after cancel, got %d", broker.SubscriberCount())
		}

		_, ok := <-events
		if ok {
			t.Error("expected channel to be closed")
		}
	})

	t.Run("publish after shutdown is a no-op", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		if !broker.IsShutdown() {
			t.Error("IsShutdown() = false after Shutdown")
		}
		broker.Publish(EventCreated, "dropped")
	})

	t.Run("shutdown closes subscriber channels", func(t *testing.T) {
		broker := NewBroker[string]("test")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)
		broker.Shutdown()

		select {
		case _, ok := <-events:
			if ok {
				t.Error("expected closed channel after shutdown")
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for channel close")
		}
	})
}

func TestHub(t *testing.T) {
	t.Run("provides session and turn brokers", func(t *testing.T) {
		hub := NewHub()
		defer hub.Shutdown()

		if hub.Session == nil {
			t.Error("Session broker is nil")
		}
		if hub.Turn == nil {
			t.Error("Turn broker is nil")
		}
	})

	t.Run("shutdown stops all brokers", func(t *testing.T) {
		hub := NewHub()
		hub.Shutdown()

		if !hub.IsShutdown() {
			t.Error("IsShutdown() = false after Shutdown")
		}
		if !hub.Session.IsShutdown() {
			t.Error("Session broker still running after hub shutdown")
		}
		if !hub.Turn.IsShutdown() {
			t.Error("Turn broker still running after hub shutdown")
		}
	})
}
