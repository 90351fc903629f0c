package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/debug"
)

// SQLiteStore implements Store using SQLite. The message list is stored as
// one JSON blob per session row and rewritten whole on every Put.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Put inserts or fully replaces a session row.
func (s *SQLiteStore) Put(ctx context.Context, sess *Session) error {
	messages, err := json.Marshal(sess.Messages)
	if err != nil {
		return fmt.Errorf("marshaling messages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO sessions (id, title, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, sess.ID, sess.Title, string(messages), sess.CreatedAt.UnixMilli(), sess.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	return nil
}

// Delete removes a session row by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// List returns all sessions ordered by creation time descending. A row
// whose messages blob no longer decodes hydrates with only the welcome
// message rather than failing the whole load.
func (s *SQLiteStore) List(ctx context.Context) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, messages, created_at, updated_at
		FROM sessions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var (
			id, title, messagesJSON string
			createdAt, updatedAt    int64
		)
		if err := rows.Scan(&id, &title, &messagesJSON, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		var messages []chat.Message
		if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
			debug.Error("session", err, fmt.Sprintf("decoding messages for %s, restoring welcome only", id))
			messages = []chat.Message{chat.NewModelMessage(id+"-welcome", chat.KindChat, WelcomeText)}
		}

		sessions = append(sessions, &Session{
			ID:        id,
			Title:     title,
			Messages:  messages,
			CreatedAt: time.UnixMilli(createdAt),
			UpdatedAt: time.UnixMilli(updatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}
