package chat

import (
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/tui/styles"
)

// Status represents the current chat status.
type Status int

// Status values.
const (
	StatusReady Status = iota
	StatusThinking
)

// StatusBar displays the current chat status and session title.
type StatusBar struct {
	status  Status
	title   string
	infoMsg string
	width   int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		status: StatusReady,
	}
}

// SetStatus sets the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.status = status
	if status == StatusThinking {
		s.infoMsg = ""
	}
}

// SetTitle sets the active session title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetInfo sets a transient informational message.
func (s *StatusBar) SetInfo(msg string) {
	s.infoMsg = msg
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := styles.CurrentTheme()

	var statusText string
	var statusStyle lipgloss.Style

	switch {
	case s.infoMsg != "":
		statusText = s.infoMsg
		statusStyle = t.S().Info
	case s.status == StatusThinking:
		statusText = "Thinking..."
		statusStyle = t.S().Info
	default:
		statusText = s.title
		statusStyle = t.S().Success
	}

	barStyle := lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BgSubtle)

	help := t.S().Muted.Render("Enter to send • / for commands • Ctrl+C to quit")

	left := statusStyle.Render(statusText)
	right := help

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return barStyle.Render(content)
}
