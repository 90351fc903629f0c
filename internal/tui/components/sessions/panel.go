// Package sessions provides the chat list panel for switching, creating,
// renaming, and deleting sessions.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/session"
	"github.com/havenchat/haven/internal/tui/styles"
)

// PanelStep represents the current step in the panel flow.
type PanelStep int

const (
	// StepList shows the session list.
	StepList PanelStep = iota
	// StepRename shows the rename input.
	StepRename
)

// Panel is the sessions management panel.
type Panel struct {
	sessionSvc  *session.Service
	sessions    []*session.Session
	renameInput textinput.Model
	step        PanelStep
	cursor      int
	infoMsg     string
	visible     bool
	width       int
	height      int
}

// New creates a new sessions Panel.
func New(sessionSvc *session.Service) *Panel {
	ti := textinput.New()
	ti.Placeholder = "New name"
	ti.CharLimit = 80

	return &Panel{
		sessionSvc:  sessionSvc,
		renameInput: ti,
		step:        StepList,
	}
}

// Init initializes the panel.
func (p *Panel) Init() tea.Cmd {
	p.Refresh()
	return nil
}

// Show makes the panel visible with a fresh list.
func (p *Panel) Show() {
	p.visible = true
	p.step = StepList
	p.infoMsg = ""
	p.Refresh()
}

// Hide hides the panel.
func (p *Panel) Hide() {
	p.visible = false
	p.step = StepList
	p.renameInput.Blur()
}

// IsVisible returns whether the panel is visible.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Refresh reloads the session list and clamps the cursor onto the
// active session.
func (p *Panel) Refresh() {
	p.sessions = p.sessionSvc.List()
	activeID := p.sessionSvc.ActiveID()
	p.cursor = 0
	for i, sess := range p.sessions {
		if sess.ID == activeID {
			p.cursor = i
			break
		}
	}
}

// SetSize sets the panel size.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.renameInput.SetWidth(40)
}

// Update handles messages.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	if p.step == StepRename {
		return p.updateRename(msg)
	}
	return p.updateList(msg)
}

func (p *Panel) updateList(msg tea.Msg) (*Panel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "esc", "q":
		p.Hide()

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}

	case "down", "j":
		if p.cursor < len(p.sessions)-1 {
			p.cursor++
		}

	case "enter":
		if sess := p.selected(); sess != nil {
			if err := p.sessionSvc.SetActive(sess.ID); err != nil {
				debug.Error("sessions", err, "switching session")
			}
			p.Hide()
		}

	case "n":
		if _, err := p.sessionSvc.Create(context.Background()); err != nil {
			debug.Error("sessions", err, "creating session")
			return p, nil
		}
		p.Hide()

	case "d":
		if sess := p.selected(); sess != nil {
			err := p.sessionSvc.Delete(context.Background(), sess.ID)
			switch {
			case errors.Is(err, session.ErrLastSession):
				p.infoMsg = "This is your only chat, so it stays."
			case err != nil:
				debug.Error("sessions", err, "deleting session")
			default:
				p.infoMsg = ""
			}
			p.Refresh()
		}

	case "r":
		if sess := p.selected(); sess != nil {
			p.step = StepRename
			p.renameInput.SetValue(sess.Title)
			return p, p.renameInput.Focus()
		}
	}

	return p, nil
}

func (p *Panel) updateRename(msg tea.Msg) (*Panel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.step = StepList
			p.renameInput.Blur()
			return p, nil

		case "enter":
			title := strings.TrimSpace(p.renameInput.Value())
			if sess := p.selected(); sess != nil && title != "" {
				if err := p.sessionSvc.Rename(context.Background(), sess.ID, title); err != nil {
					debug.Error("sessions", err, "renaming session")
				}
			}
			p.step = StepList
			p.renameInput.Blur()
			p.Refresh()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.renameInput, cmd = p.renameInput.Update(msg)
	return p, cmd
}

func (p *Panel) selected() *session.Session {
	if p.cursor < 0 || p.cursor >= len(p.sessions) {
		return nil
	}
	return p.sessions[p.cursor]
}

// Cursor returns the cursor position while renaming.
func (p *Panel) Cursor() *tea.Cursor {
	if p.step == StepRename {
		return p.renameInput.Cursor()
	}
	return nil
}

// View renders the panel.
func (p *Panel) View() string {
	t := styles.CurrentTheme()

	var rows []string
	rows = append(rows, t.S().Title.Render("Your Chats"), "")

	if p.step == StepRename {
		rows = append(rows, t.S().Muted.Render("Rename chat:"), p.renameInput.View())
	} else {
		activeID := p.sessionSvc.ActiveID()
		for i, sess := range p.sessions {
			marker := "  "
			if sess.ID == activeID {
				marker = "* "
			}
			line := fmt.Sprintf("%s%s (%d messages)", marker, sess.Title, len(sess.Messages))
			if i == p.cursor {
				rows = append(rows, t.S().Primary.Render("> "+line))
			} else {
				rows = append(rows, t.S().Text.Render("  "+line))
			}
		}
		if p.infoMsg != "" {
			rows = append(rows, "", t.S().Warning.Render(p.infoMsg))
		}
		rows = append(rows, "", t.S().Subtle.Render("enter switch • n new • r rename • d delete • esc close"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, content)
}
