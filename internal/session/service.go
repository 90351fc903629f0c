package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/events"
	"github.com/havenchat/haven/internal/pubsub"
)

// titleRunes is how many characters of the first user message become the
// derived session title.
const titleRunes = 21

// Service owns the session list. All mutations go through its methods and
// are serialized by one mutex; callers never touch the raw list. Every
// mutation rewrites the affected row in the store before returning.
type Service struct {
	store    Store
	broker   *pubsub.Broker[events.SessionEvent]
	sessions []*Session // Newest first
	active   string
	mu       sync.RWMutex
}

// NewService creates a new session service.
func NewService(store Store, broker *pubsub.Broker[events.SessionEvent]) *Service {
	return &Service{
		store:  store,
		broker: broker,
	}
}

// Hydrate loads all sessions from the store. An empty store yields one
// default session so the service never holds zero sessions.
func (s *Service) Hydrate(ctx context.Context) error {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("hydrating sessions: %w", err)
	}

	s.mu.Lock()
	s.sessions = sessions
	if len(s.sessions) > 0 {
		s.active = s.sessions[0].ID
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	_, err = s.Create(ctx)
	return err
}

// Create inserts a new session at the front of the list, seeded with the
// welcome message, and makes it active.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:    uuid.New().String(),
		Title: DefaultTitle,
		Messages: []chat.Message{
			chat.NewModelMessage(uuid.New().String(), chat.KindChat, WelcomeText),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions = append([]*Session{sess}, s.sessions...)
	s.active = sess.ID
	s.mu.Unlock()

	if s.broker != nil {
		s.broker.Publish(pubsub.EventCreated,
			events.NewSessionCreatedEvent(sess.ID, sess.Title))
	}

	return sess, nil
}

// Delete removes a session. Deleting the only remaining session returns
// ErrLastSession; callers treat that as a no-op. If the deleted session
// was active, the first remaining session becomes active.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if len(s.sessions) <= 1 {
		s.mu.Unlock()
		return ErrLastSession
	}

	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return ErrNotFound
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if s.active == id {
		s.active = s.sessions[0].ID
	}
	s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.broker != nil {
		s.broker.Publish(pubsub.EventDeleted, events.NewSessionDeletedEvent(id))
	}

	return nil
}

// Append concatenates messages onto a session. While the title is still
// the default and the new messages contain a user message, the title is
// derived from the first one; a non-default title is never overwritten.
func (s *Service) Append(ctx context.Context, id string, msgs ...chat.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	s.mu.Lock()
	sess := s.find(id)
	if sess == nil {
		s.mu.Unlock()
		return ErrNotFound
	}

	sess.Messages = append(sess.Messages, msgs...)
	sess.UpdatedAt = time.Now()

	if sess.Title == DefaultTitle {
		for i := range msgs {
			if msgs[i].Role == chat.RoleUser && msgs[i].Text != "" {
				sess.Title = deriveTitle(msgs[i].Text)
				break
			}
		}
	}
	snapshot := *sess
	s.mu.Unlock()

	if err := s.store.Put(ctx, &snapshot); err != nil {
		return err
	}

	if s.broker != nil {
		s.broker.Publish(pubsub.EventUpdated, events.NewSessionMessagesAddedEvent(id))
	}

	return nil
}

// Rename sets a session's title explicitly. Once renamed, title derivation
// no longer applies.
func (s *Service) Rename(ctx context.Context, id, title string) error {
	if title == "" {
		return nil
	}

	s.mu.Lock()
	sess := s.find(id)
	if sess == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	sess.Title = title
	sess.UpdatedAt = time.Now()
	snapshot := *sess
	s.mu.Unlock()

	if err := s.store.Put(ctx, &snapshot); err != nil {
		return err
	}

	if s.broker != nil {
		s.broker.Publish(pubsub.EventUpdated, events.NewSessionRenamedEvent(id, title))
	}

	return nil
}

// SetActive selects a session. Selection never mutates session content.
func (s *Service) SetActive(id string) error {
	s.mu.Lock()
	if s.find(id) == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.active = id
	s.mu.Unlock()

	if s.broker != nil {
		s.broker.Publish(pubsub.EventUpdated, events.NewSessionSwitchedEvent(id))
	}

	return nil
}

// ActiveID returns the active session ID.
func (s *Service) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Active returns a snapshot of the active session.
func (s *Service) Active() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess := s.find(s.active); sess != nil {
		return snapshotOf(sess)
	}
	return nil
}

// Get returns a snapshot of a session by ID.
func (s *Service) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess := s.find(id); sess != nil {
		return snapshotOf(sess), nil
	}
	return nil, ErrNotFound
}

// Messages returns a copy of a session's message list.
func (s *Service) Messages(id string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.find(id)
	if sess == nil {
		return nil, ErrNotFound
	}
	msgs := make([]chat.Message, len(sess.Messages))
	copy(msgs, sess.Messages)
	return msgs, nil
}

// List returns snapshots of all sessions, newest first.
func (s *Service) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = snapshotOf(sess)
	}
	return out
}

// Count returns the number of sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// find returns the live session with the given ID. Callers must hold mu.
func (s *Service) find(id string) *Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

func snapshotOf(sess *Session) *Session {
	out := *sess
	out.Messages = make([]chat.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return &out
}

// deriveTitle builds a session title from the first user message, with an
// ellipsis when truncated.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleRunes {
		return text
	}
	return string(runes[:titleRunes]) + "…"
}
