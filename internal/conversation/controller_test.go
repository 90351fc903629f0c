package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/safety"
	"github.com/havenchat/haven/internal/session"
)

// memStore is a minimal in-memory session.Store.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*session.Session)}
}

func (m *memStore) Put(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) List(_ context.Context) ([]*session.Session, error) {
	return nil, nil
}

// fakeClient is a scripted gemini.Client.
type fakeClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	history []chat.Message
	started chan struct{} // closed-ish signal per call, may be nil
	release chan struct{} // blocks Generate until closed, may be nil
}

func (f *fakeClient) Generate(_ context.Context, history []chat.Message) (string, error) {
	f.mu.Lock()
	f.calls++
	f.history = append([]chat.Message(nil), history...)
	started := f.started
	release := f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return f.reply, f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func setup(t *testing.T, client *fakeClient) (*Controller, *session.Service, string) {
	t.Helper()

	svc := session.NewService(newMemStore(), nil)
	if err := svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	ctrl := NewController(client, svc, nil)
	return ctrl, svc, svc.ActiveID()
}

func lastMessage(t *testing.T, svc *session.Service, id string) chat.Message {
	t.Helper()
	msgs, err := svc.Messages(id)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("no messages in session")
	}
	return msgs[len(msgs)-1]
}

func TestController_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("appends user message then cleaned reply", func(t *testing.T) {
		client := &fakeClient{reply: "Let's try this. [SUGGESTIONS: Make a plan, Take a break]"}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "I'm stressed about exams", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}

		msgs, _ := svc.Messages(id)
		// Welcome, user, reply.
		if len(msgs) != 3 {
			t.Fatalf("len(msgs) = %d, want 3", len(msgs))
		}
		if msgs[1].Role != chat.RoleUser || msgs[1].Text != "I'm stressed about exams" {
			t.Errorf("msgs[1] = %+v, want the user message", msgs[1])
		}
		if msgs[2].Role != chat.RoleModel || msgs[2].Text != "Let's try this." {
			t.Errorf("msgs[2] = %+v, want cleaned reply", msgs[2])
		}
	})

	t.Run("sends full history to the model", func(t *testing.T) {
		client := &fakeClient{reply: "ok"}
		ctrl, _, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "first", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if err := ctrl.Send(ctx, id, "second", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}

		// Welcome, first, reply, second.
		if len(client.history) != 4 {
			t.Fatalf("history length = %d, want 4", len(client.history))
		}
		if client.history[3].Text != "second" {
			t.Errorf("history[3].Text = %q, want %q", client.history[3].Text, "second")
		}
	})

	t.Run("empty submit with no attachment is rejected", func(t *testing.T) {
		client := &fakeClient{reply: "ok"}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "", nil); !errors.Is(err, ErrEmpty) {
			t.Fatalf("Send() error = %v, want ErrEmpty", err)
		}
		msgs, _ := svc.Messages(id)
		if len(msgs) != 1 {
			t.Errorf("len(msgs) = %d, want 1 (session untouched)", len(msgs))
		}
		if client.callCount() != 0 {
			t.Errorf("calls = %d, want 0", client.callCount())
		}
	})

	t.Run("attachment alone is a valid submit", func(t *testing.T) {
		client := &fakeClient{reply: "nice picture"}
		ctrl, svc, id := setup(t, client)

		att := &chat.Attachment{Data: []byte{1, 2}, MIMEType: "image/png", Filename: "p.png"}
		if err := ctrl.Send(ctx, id, "", att); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		msgs, _ := svc.Messages(id)
		if msgs[1].Attachment == nil {
			t.Error("user message lost its attachment")
		}
	})

	t.Run("crisis text short-circuits the remote call", func(t *testing.T) {
		client := &fakeClient{reply: "should never be used"}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "I've been thinking about hurting myself lately", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}

		if client.callCount() != 0 {
			t.Fatalf("calls = %d, want 0 (no network on crisis path)", client.callCount())
		}
		last := lastMessage(t, svc, id)
		if last.Kind != chat.KindCrisis {
			t.Errorf("Kind = %q, want %q", last.Kind, chat.KindCrisis)
		}
		if last.Text != safety.CrisisText {
			t.Error("crisis reply should be the canned safety text")
		}
	})

	t.Run("empty reply substitutes the apology", func(t *testing.T) {
		client := &fakeClient{reply: ""}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "hello?", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		last := lastMessage(t, svc, id)
		if last.Text != EmptyReplyText {
			t.Errorf("Text = %q, want the empty-reply apology", last.Text)
		}
	})

	t.Run("directive-only reply substitutes the apology", func(t *testing.T) {
		client := &fakeClient{reply: "[SUGGESTIONS: a, b]"}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "hm", nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		last := lastMessage(t, svc, id)
		if last.Text != EmptyReplyText {
			t.Errorf("Text = %q, want the empty-reply apology", last.Text)
		}
	})

	t.Run("transport failure degrades to the fallback message", func(t *testing.T) {
		client := &fakeClient{err: errors.New("connection reset")}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.Send(ctx, id, "are you there?", nil); err != nil {
			t.Fatalf("Send() error = %v, failures must stay silent", err)
		}
		last := lastMessage(t, svc, id)
		if last.Text != FallbackText {
			t.Errorf("Text = %q, want the stuck fallback", last.Text)
		}
		if client.callCount() != 1 {
			t.Errorf("calls = %d, want 1 (no retry)", client.callCount())
		}
	})

	t.Run("second send while busy is rejected", func(t *testing.T) {
		client := &fakeClient{
			reply:   "done",
			started: make(chan struct{}, 1),
			release: make(chan struct{}),
		}
		ctrl, _, id := setup(t, client)

		done := make(chan error, 1)
		go func() {
			done <- ctrl.Send(ctx, id, "slow one", nil)
		}()

		<-client.started
		if !ctrl.IsBusy(id) {
			t.Error("IsBusy() = false while a turn is in flight")
		}
		if err := ctrl.Send(ctx, id, "impatient", nil); !errors.Is(err, ErrBusy) {
			t.Errorf("Send() error = %v, want ErrBusy", err)
		}

		close(client.release)
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("first Send() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("first send never finished")
		}

		if ctrl.IsBusy(id) {
			t.Error("IsBusy() = true after the turn resolved")
		}
		if client.callCount() != 1 {
			t.Errorf("calls = %d, want 1 (rejected send never reached the model)", client.callCount())
		}
	})
}

func TestController_SendStudyPlan(t *testing.T) {
	ctx := context.Background()
	plan := StudyPlan{Subject: "Biology", Goal: "Pass the mock", MinutesPerDay: 30, DaysUntilDue: 7}

	t.Run("synthesizes a prompt from the form", func(t *testing.T) {
		client := &fakeClient{reply: "Day 1: revise cells."}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.SendStudyPlan(ctx, id, plan); err != nil {
			t.Fatalf("SendStudyPlan() error = %v", err)
		}

		msgs, _ := svc.Messages(id)
		prompt := msgs[1].Text
		for _, want := range []string{"Biology", "Pass the mock", "30", "7"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q: %q", want, prompt)
			}
		}
		if msgs[1].Kind != chat.KindStudyPlan || msgs[2].Kind != chat.KindStudyPlan {
			t.Error("study plan turn should mark both messages with the study plan kind")
		}
	})

	t.Run("failure uses the study plan fallback", func(t *testing.T) {
		client := &fakeClient{err: errors.New("boom")}
		ctrl, svc, id := setup(t, client)

		if err := ctrl.SendStudyPlan(ctx, id, plan); err != nil {
			t.Fatalf("SendStudyPlan() error = %v", err)
		}
		last := lastMessage(t, svc, id)
		if last.Text != StudyPlanFallbackText {
			t.Errorf("Text = %q, want the study plan fallback", last.Text)
		}
	})
}

func TestStudyPlanPrompt(t *testing.T) {
	plan := StudyPlan{Subject: "History", Goal: "Finish essay", MinutesPerDay: 45, DaysUntilDue: 3}
	prompt := plan.Prompt()

	if !strings.Contains(prompt, "Subject: History") {
		t.Errorf("prompt missing subject line: %q", prompt)
	}
	if !strings.Contains(prompt, "45 minutes per day") {
		t.Errorf("prompt missing minutes: %q", prompt)
	}
	if !strings.Contains(prompt, "3 days until the deadline") {
		t.Errorf("prompt missing days: %q", prompt)
	}
}
