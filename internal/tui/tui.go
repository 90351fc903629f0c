// Package tui provides the terminal user interface for Haven.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/havenchat/haven/internal/bridge"
	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/conversation"
	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/pubsub"
	"github.com/havenchat/haven/internal/session"
	"github.com/havenchat/haven/internal/tui/page"
	"github.com/havenchat/haven/internal/tui/page/chat"
	"github.com/havenchat/haven/internal/tui/styles"
	"github.com/havenchat/haven/internal/tui/util"
)

// Model is the main TUI model.
type Model struct {
	chatPage    *chat.Model
	hub         *pubsub.Hub
	bridge      *bridge.TUIBridge
	currentPage page.ID
	width       int
	height      int
	ready       bool
}

// New creates a new TUI model.
func New(cfg *config.Config, controller *conversation.Controller, sessionSvc *session.Service, hub *pubsub.Hub) *Model {
	return &Model{
		chatPage:    chat.New(cfg, controller, sessionSvc),
		hub:         hub,
		currentPage: page.Chat,
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return m.chatPage.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debug.Event("tui", "WindowSize", fmt.Sprintf("width=%d height=%d", msg.Width, msg.Height))
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chatPage.SetSize(m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		debug.Event("tui", "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case page.ChangeMsg:
		debug.Event("tui", "PageChange", fmt.Sprintf("page=%s", msg.Page))
		m.currentPage = msg.Page
		return m, nil

	case util.InfoMsg:
		return m, nil
	}

	_, cmd := m.chatPage.Update(msg)
	return m, cmd
}

// View renders the TUI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	view.Content = m.chatPage.View()
	view.Cursor = m.chatPage.Cursor()
	return view
}

// Run starts the TUI program.
func Run(cfg *config.Config, controller *conversation.Controller, sessionSvc *session.Service, hub *pubsub.Hub) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("haven requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	styles.NewManager()

	model := New(cfg, controller, sessionSvc, hub)
	p := tea.NewProgram(model)

	// Forward pub/sub events to Bubble Tea messages.
	if hub != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tuiBridge := bridge.NewTUIBridge(hub, p)
		model.bridge = tuiBridge
		tuiBridge.Start(ctx)
		defer tuiBridge.Stop()
	}

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
