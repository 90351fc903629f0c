package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/tui/styles"
)

// MessageList displays the conversation messages.
type MessageList struct {
	messages []chat.Message
	markdown *MarkdownRenderer
	width    int
	height   int
	offset   int
}

// NewMessageList creates a new message list component.
func NewMessageList() *MessageList {
	return &MessageList{
		messages: []chat.Message{},
		markdown: NewMarkdownRenderer(),
	}
}

// SetMessages sets the messages to display.
func (m *MessageList) SetMessages(messages []chat.Message) {
	m.messages = messages
}

// SetSize sets the component size.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ScrollUp scrolls the message list up.
func (m *MessageList) ScrollUp() {
	m.offset++
}

// ScrollDown scrolls the message list down.
func (m *MessageList) ScrollDown() {
	if m.offset > 0 {
		m.offset--
	}
}

// ScrollToBottom scrolls to the bottom of the list.
func (m *MessageList) ScrollToBottom() {
	m.offset = 0 // Rendered bottom-up, so 0 is the bottom
}

// View renders the message list, pinned to the most recent messages.
func (m *MessageList) View() string {
	t := styles.CurrentTheme()

	if len(m.messages) == 0 {
		empty := t.S().Muted.Render("It's quiet in here. Say hi whenever you're ready.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	var rendered []string
	for _, msg := range m.messages {
		rendered = append(rendered, m.renderMessage(msg))
	}

	content := strings.Join(rendered, "\n\n")

	// Keep the tail visible: drop leading lines that overflow the area.
	lines := strings.Split(content, "\n")
	visible := m.height
	if visible < 1 {
		visible = 1
	}
	end := len(lines) - m.offset
	if end > len(lines) {
		end = len(lines)
	}
	if end < 1 {
		end = 1
	}
	start := end - visible
	if start < 0 {
		start = 0
	}
	content = strings.Join(lines[start:end], "\n")

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1)

	return containerStyle.Render(content)
}

func (m *MessageList) renderMessage(msg chat.Message) string {
	t := styles.CurrentTheme()

	contentWidth := m.width - 4 // Account for padding

	switch msg.Role {
	case chat.RoleUser:
		return m.renderUserMessage(msg, contentWidth)
	case chat.RoleModel:
		return m.renderModelMessage(msg, contentWidth)
	default:
		return t.S().Muted.Render(msg.Text)
	}
}

func (m *MessageList) renderUserMessage(msg chat.Message, width int) string {
	t := styles.CurrentTheme()

	header := t.S().Text.Bold(true).Render("You")

	var parts []string
	parts = append(parts, header)

	if msg.Text != "" {
		parts = append(parts, t.S().Text.Width(width).Render(msg.Text))
	}

	if msg.Attachment != nil {
		parts = append(parts, t.S().Muted.Render(attachmentMarker(msg.Attachment)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *MessageList) renderModelMessage(msg chat.Message, width int) string {
	t := styles.CurrentTheme()

	headerStyle := t.S().Primary
	headerText := "Haven"
	if msg.Kind == chat.KindCrisis {
		headerStyle = t.S().Warning
		headerText = "Haven ♥"
	}
	header := headerStyle.Bold(true).Render(headerText)

	body, err := m.markdown.Render(msg.Text, width)
	if err != nil || body == "" {
		body = t.S().Text.Width(width).Render(msg.Text)
	}
	body = strings.TrimRight(body, "\n")

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// attachmentMarker renders the inline placeholder for an attached file.
func attachmentMarker(att *chat.Attachment) string {
	name := att.Filename
	if name == "" {
		name = "attachment"
	}
	if att.IsImage() {
		return fmt.Sprintf("  [image: %s]", name)
	}
	return fmt.Sprintf("  [file: %s]", name)
}
