// Package chat defines the conversation data model for Haven.
package chat

import (
	"strings"
	"time"
)

// Role represents the author of a message.
type Role string

// Role constants.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Kind tags a message with the flow that produced it.
type Kind string

// Kind constants.
const (
	KindChat      Kind = "chat"
	KindStudyPlan Kind = "studyplan"
	KindCrisis    Kind = "crisis"
)

// Attachment is a file the user attached to a message. Before a message is
// sent the attachment lives in staging, outside any session; once sent it
// belongs to exactly one message.
type Attachment struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
	Filename string `json:"filename"`
}

// IsImage reports whether the attachment can be shown inline.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// Message is one entry in a conversation. Messages are immutable once
// appended; display order is append order.
type Message struct {
	ID         string      `json:"id"`
	Role       Role        `json:"role"`
	Kind       Kind        `json:"kind,omitempty"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewUserMessage creates a user message with the given text and optional
// attachment.
func NewUserMessage(id, text string, att *Attachment) Message {
	return Message{
		ID:         id,
		Role:       RoleUser,
		Kind:       KindChat,
		Text:       text,
		Attachment: att,
		CreatedAt:  time.Now(),
	}
}

// NewModelMessage creates a model message with the given kind and text.
func NewModelMessage(id string, kind Kind, text string) Message {
	return Message{
		ID:        id,
		Role:      RoleModel,
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
