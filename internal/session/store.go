// Package session provides chat session management with persistence.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/havenchat/haven/internal/chat"
)

// DefaultTitle is the title given to a session before one is derived from
// the first user message.
const DefaultTitle = "New Chat"

// WelcomeText is the message seeded into every new session.
const WelcomeText = "Hi, I'm Haven. I'm here to listen: school stress, " +
	"friendships, or anything else on your mind. What's going on today?"

// ErrNotFound is returned when a session is not found.
var ErrNotFound = errors.New("session not found")

// ErrLastSession is returned when deleting the only remaining session.
var ErrLastSession = errors.New("cannot delete the last session")

// Session represents one conversation thread with its own message history.
type Session struct {
	ID        string
	Title     string
	Messages  []chat.Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines the interface for session persistence. Every Put rewrites
// the full row, message list included; there are no partial writes.
type Store interface {
	// Put inserts or fully replaces a session row.
	Put(ctx context.Context, s *Session) error

	// Delete removes a session row by ID.
	Delete(ctx context.Context, id string) error

	// List returns all sessions ordered by creation time descending.
	List(ctx context.Context) ([]*Session, error)
}
