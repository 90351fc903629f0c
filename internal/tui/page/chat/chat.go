// Package chat provides the main chat page for Haven.
package chat

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/bridge"
	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/conversation"
	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/events"
	"github.com/havenchat/haven/internal/session"
	"github.com/havenchat/haven/internal/tui/components/sessions"
	"github.com/havenchat/haven/internal/tui/components/tools"
	"github.com/havenchat/haven/internal/tui/styles"
	"github.com/havenchat/haven/internal/tui/util"
)

// sendDoneMsg reports the local outcome of a send command. Reply content
// arrives separately through the event bridge.
type sendDoneMsg struct {
	err error
}

// overlay identifies which full-screen widget covers the transcript.
type overlay int

const (
	overlayNone overlay = iota
	overlaySessions
	overlayTimer
	overlayBreathing
	overlayStudyPlan
)

// Model is the chat page model.
type Model struct {
	cfg        *config.Config
	controller *conversation.Controller
	sessionSvc *session.Service

	messages      *MessageList
	input         *Input
	status        *StatusBar
	sessionsPanel *sessions.Panel
	timer         *tools.Timer
	breathing     *tools.Breathing
	planForm      *tools.StudyPlanForm

	commandRegistry *CommandRegistry

	sessionID         string
	chips             []string
	pendingAttachment *chat.Attachment
	activeOverlay     overlay
	isSending         bool
	width             int
	height            int
}

// New creates a new chat page model.
func New(cfg *config.Config, controller *conversation.Controller, sessionSvc *session.Service) *Model {
	return &Model{
		cfg:           cfg,
		controller:    controller,
		sessionSvc:    sessionSvc,
		messages:      NewMessageList(),
		input:         NewInput(),
		status:        NewStatusBar(),
		sessionsPanel: sessions.New(sessionSvc),
		timer:         tools.NewTimer(),
		breathing:     tools.NewBreathing(),
		planForm:      tools.NewStudyPlanForm(),

		commandRegistry: NewCommandRegistry(),
	}
}

// Init initializes the chat page.
func (m *Model) Init() tea.Cmd {
	m.sessionID = m.sessionSvc.ActiveID()
	m.refresh()
	return m.input.Init()
}

// refresh reloads the transcript and title from the active session.
func (m *Model) refresh() {
	if msgs, err := m.sessionSvc.Messages(m.sessionID); err == nil {
		m.messages.SetMessages(msgs)
		m.messages.ScrollToBottom()
	}
	if sess, err := m.sessionSvc.Get(m.sessionID); err == nil {
		m.status.SetTitle(sess.Title)
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case sendDoneMsg:
		return m.handleSendDone(msg)

	case NewSessionMsg:
		if _, err := m.sessionSvc.Create(context.Background()); err != nil {
			debug.Error("chat", err, "creating session")
		}
		return m, nil

	case OpenSessionsMsg:
		m.activeOverlay = overlaySessions
		m.sessionsPanel.Show()
		m.input.Blur()
		return m, nil

	case OpenTimerMsg:
		m.activeOverlay = overlayTimer
		m.input.Blur()
		return m, m.timer.Init()

	case OpenBreathingMsg:
		m.activeOverlay = overlayBreathing
		m.input.Blur()
		return m, m.breathing.Init()

	case OpenStudyPlanMsg:
		m.activeOverlay = overlayStudyPlan
		m.planForm.Reset()
		m.input.Blur()
		return m, m.planForm.Init()

	case ToggleDebugMsg:
		m.toggleDebug()
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case AttachFileMsg:
		m.stageAttachment(msg.Path)
		return m, nil

	case UnknownCommandMsg:
		m.status.SetInfo(fmt.Sprintf("I don't know the command /%s", msg.Command))
		return m, nil

	case tools.SubmitStudyPlanMsg:
		m.activeOverlay = overlayNone
		return m, m.sendStudyPlan(msg.Plan)

	case tools.TimerTickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case tools.BreathTickMsg:
		var cmd tea.Cmd
		m.breathing, cmd = m.breathing.Update(msg)
		return m, cmd

	// Bridge messages from the pub/sub system
	case bridge.SessionEventMsg:
		return m.handleSessionEvent(msg)

	case bridge.TurnEventMsg:
		return m.handleTurnEvent(msg)
	}

	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.submit()

	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+x":
		if m.pendingAttachment != nil {
			m.pendingAttachment = nil
			m.status.SetInfo("Attachment removed")
		}
		return m, nil

	case "pgup":
		m.messages.ScrollUp()
		return m, nil

	case "pgdown":
		m.messages.ScrollDown()
		return m, nil
	}

	// Suggestion chips answer with a single keystroke.
	if cmd, ok := m.chipKey(msg); ok {
		return m, cmd
	}

	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.activeOverlay {
	case overlaySessions:
		var cmd tea.Cmd
		m.sessionsPanel, cmd = m.sessionsPanel.Update(msg)
		if !m.sessionsPanel.IsVisible() {
			m.closeOverlay()
		}
		return m, cmd

	case overlayTimer:
		if msg.String() == "esc" {
			m.closeOverlay()
			return m, nil
		}
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case overlayBreathing:
		if msg.String() == "esc" {
			m.closeOverlay()
			return m, nil
		}
		var cmd tea.Cmd
		m.breathing, cmd = m.breathing.Update(msg)
		return m, cmd

	case overlayStudyPlan:
		if msg.String() == "esc" {
			m.closeOverlay()
			return m, nil
		}
		var cmd tea.Cmd
		m.planForm, cmd = m.planForm.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) closeOverlay() {
	m.activeOverlay = overlayNone
	m.timer.Pause()
	m.breathing.Pause()
	if !m.isSending {
		m.input.Enable()
	}
}

// toggleDebug flips debug logging for this run and persists the preference
// without rewriting the rest of the config file.
func (m *Model) toggleDebug() {
	if debug.IsEnabled() {
		debug.Disable()
		m.persistDebug(false)
		m.status.SetInfo("Debug logging off")
		return
	}

	logPath := config.DebugLogPath()
	if err := debug.Enable(logPath); err != nil {
		m.status.SetInfo("I couldn't open the debug log.")
		return
	}
	m.persistDebug(true)
	m.status.SetInfo(fmt.Sprintf("Debug logging on: %s", logPath))
}

func (m *Model) persistDebug(enabled bool) {
	if m.cfg == nil {
		return
	}
	if m.cfg.Options != nil {
		m.cfg.Options.Debug = enabled
	}
	if err := m.cfg.SetConfigField("options.debug", enabled); err != nil {
		debug.Error("chat", err, "persisting debug preference")
	}
}

// chipKey maps alt+1..alt+9 onto the current suggestion chips.
func (m *Model) chipKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if len(m.chips) == 0 || m.isSending {
		return nil, false
	}
	key := msg.String()
	if len(key) != 5 || key[:4] != "alt+" {
		return nil, false
	}
	idx := int(key[4] - '1')
	if idx < 0 || idx >= len(m.chips) {
		return nil, false
	}
	chip := m.chips[idx]
	m.chips = nil
	return m.send(chip, nil), true
}

func (m *Model) submit() (util.Model, tea.Cmd) {
	value := m.input.Value()

	if cmd := m.parseCommand(value); cmd != nil {
		m.input.Clear()
		return m, cmd
	}

	if value == "" && m.pendingAttachment == nil {
		return m, nil
	}
	if m.isSending {
		m.status.SetInfo("One sec, I'm still thinking about the last one.")
		return m, nil
	}

	att := m.pendingAttachment
	m.pendingAttachment = nil
	m.input.Clear()
	return m, m.send(value, att)
}

// send kicks off one turn. The transcript updates arrive via the bridge.
func (m *Model) send(text string, att *chat.Attachment) tea.Cmd {
	m.isSending = true
	m.chips = nil
	m.input.Disable()
	m.status.SetStatus(StatusThinking)

	sessionID := m.sessionID
	return func() tea.Msg {
		err := m.controller.Send(context.Background(), sessionID, text, att)
		return sendDoneMsg{err: err}
	}
}

func (m *Model) sendStudyPlan(plan conversation.StudyPlan) tea.Cmd {
	if m.isSending {
		m.status.SetInfo("One sec, I'm still thinking about the last one.")
		return nil
	}

	m.isSending = true
	m.chips = nil
	m.input.Disable()
	m.status.SetStatus(StatusThinking)

	sessionID := m.sessionID
	return func() tea.Msg {
		err := m.controller.SendStudyPlan(context.Background(), sessionID, plan)
		return sendDoneMsg{err: err}
	}
}

func (m *Model) handleSendDone(msg sendDoneMsg) (util.Model, tea.Cmd) {
	m.isSending = m.controller.IsBusy(m.sessionID)
	if !m.isSending {
		m.input.Enable()
		m.status.SetStatus(StatusReady)
	}

	switch {
	case errors.Is(msg.err, conversation.ErrBusy):
		m.status.SetInfo("One sec, I'm still thinking about the last one.")
	case msg.err != nil:
		debug.Error("chat", msg.err, "send failed")
	}

	m.refresh()
	return m, m.input.Focus()
}

func (m *Model) handleSessionEvent(msg bridge.SessionEventMsg) (util.Model, tea.Cmd) {
	payload := msg.Event.Payload

	switch payload.Type {
	case events.SessionEventCreated, events.SessionEventSwitched, events.SessionEventDeleted:
		m.sessionID = m.sessionSvc.ActiveID()
		m.chips = nil
		m.isSending = m.controller.IsBusy(m.sessionID)
		if m.isSending {
			m.input.Disable()
			m.status.SetStatus(StatusThinking)
		} else if m.activeOverlay == overlayNone {
			m.input.Enable()
			m.status.SetStatus(StatusReady)
		}
		m.refresh()

	case events.SessionEventRenamed, events.SessionEventMessagesAdded:
		m.refresh()
	}

	return m, nil
}

func (m *Model) handleTurnEvent(msg bridge.TurnEventMsg) (util.Model, tea.Cmd) {
	payload := msg.Event.Payload
	if payload.SessionID != m.sessionID {
		return m, nil
	}

	switch payload.Type {
	case events.TurnEventStarted:
		m.refresh()

	case events.TurnEventReply:
		m.chips = payload.Chips
		m.refresh()

	case events.TurnEventCrisis, events.TurnEventFailed:
		m.chips = nil
		m.refresh()

	case events.TurnEventFinished:
		m.isSending = false
		if m.activeOverlay == overlayNone {
			m.input.Enable()
		}
		m.status.SetStatus(StatusReady)
		m.refresh()
		return m, m.input.Focus()
	}

	return m, nil
}

// stageAttachment reads a file from disk and holds it for the next message.
func (m *Model) stageAttachment(path string) {
	if path == "" {
		m.status.SetInfo("Usage: /attach <path>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		debug.Error("chat", err, "reading attachment")
		m.status.SetInfo("I couldn't read that file.")
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	m.pendingAttachment = &chat.Attachment{
		Data:     data,
		MIMEType: mimeType,
		Filename: filepath.Base(path),
	}
	m.status.SetInfo(fmt.Sprintf("Attached %s", m.pendingAttachment.Filename))
}

// View renders the chat page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	contentHeight := m.contentHeight()

	m.input.SetWidth(m.width)
	m.status.SetWidth(m.width)

	var content string
	switch m.activeOverlay {
	case overlaySessions:
		m.sessionsPanel.SetSize(m.width, contentHeight)
		content = m.sessionsPanel.View()
	case overlayTimer:
		m.timer.SetSize(m.width, contentHeight)
		content = m.timer.View()
	case overlayBreathing:
		m.breathing.SetSize(m.width, contentHeight)
		content = m.breathing.View()
	case overlayStudyPlan:
		m.planForm.SetSize(m.width, contentHeight)
		content = m.planForm.View()
	default:
		m.messages.SetSize(m.width, contentHeight)
		content = m.messages.View()
	}

	separator := lipgloss.NewStyle().
		Width(m.width).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Render("")

	var parts []string
	parts = append(parts, content)

	if row := m.chipsView(); row != "" {
		parts = append(parts, separator, row)
	}
	if row := m.attachmentView(); row != "" {
		parts = append(parts, row)
	}

	parts = append(parts, separator, m.input.View(), m.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// chipsView renders the suggestion chips row.
func (m *Model) chipsView() string {
	if len(m.chips) == 0 || m.activeOverlay != overlayNone {
		return ""
	}

	t := styles.CurrentTheme()
	var rendered []string
	for i, chip := range m.chips {
		key := t.S().Subtle.Render(fmt.Sprintf("alt+%d", i+1))
		label := t.S().Secondary.Render(chip)
		rendered = append(rendered, fmt.Sprintf("[%s] %s", key, label))
	}

	row := rendered[0]
	for _, r := range rendered[1:] {
		row += "   " + r
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(row)
}

// attachmentView renders the staged attachment line.
func (m *Model) attachmentView() string {
	if m.pendingAttachment == nil || m.activeOverlay != overlayNone {
		return ""
	}

	t := styles.CurrentTheme()
	kind := "file"
	if m.pendingAttachment.IsImage() {
		kind = "image"
	}
	line := fmt.Sprintf("Attached %s: %s (ctrl+x to remove)", kind, m.pendingAttachment.Filename)
	return lipgloss.NewStyle().Padding(0, 1).Render(t.S().Muted.Render(line))
}

// SetSize sets the chat page size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// contentHeight calculates the height of the transcript area.
func (m *Model) contentHeight() int {
	statusHeight := 1
	inputHeight := m.input.Height()
	separatorHeight := 1

	extra := 0
	if m.chipsView() != "" {
		extra += 2 // separator plus chips row
	}
	if m.attachmentView() != "" {
		extra++
	}

	h := m.height - statusHeight - inputHeight - separatorHeight - extra
	if h < 1 {
		h = 1
	}
	return h
}

// Cursor returns the cursor position.
func (m *Model) Cursor() *tea.Cursor {
	switch m.activeOverlay {
	case overlaySessions:
		return m.sessionsPanel.Cursor()
	case overlayStudyPlan:
		return m.planForm.Cursor()
	case overlayTimer, overlayBreathing:
		return nil
	}
	if m.input.IsEnabled() {
		return m.input.Cursor()
	}
	return nil
}
