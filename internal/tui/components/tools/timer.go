// Package tools provides the self-help widgets: the focus timer, the
// breathing exercise, and the study plan form.
package tools

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/tui/styles"
)

// TimerMode is the current phase of the focus timer.
type TimerMode int

// Timer modes.
const (
	ModeFocus TimerMode = iota
	ModeRest
)

// Default durations in minutes.
const (
	DefaultFocusMinutes = 25
	DefaultRestMinutes  = 5
)

// TimerState holds the timer logic, independent of rendering. Durations are
// adjusted in whole minutes and never drop below one minute.
type TimerState struct {
	FocusMinutes int
	RestMinutes  int
	Mode         TimerMode
	Remaining    int // seconds left in the current phase
	Running      bool
}

// NewTimerState creates a timer with default durations, stopped, in focus mode.
func NewTimerState() *TimerState {
	return &TimerState{
		FocusMinutes: DefaultFocusMinutes,
		RestMinutes:  DefaultRestMinutes,
		Mode:         ModeFocus,
		Remaining:    DefaultFocusMinutes * 60,
	}
}

// Toggle starts or pauses the countdown.
func (s *TimerState) Toggle() {
	s.Running = !s.Running
}

// Reset stops the timer and reloads the current phase duration.
func (s *TimerState) Reset() {
	s.Running = false
	s.Remaining = s.phaseDuration() * 60
}

// Adjust changes the current phase duration by delta whole minutes. The
// duration floors at one minute. While stopped the remaining time reloads.
func (s *TimerState) Adjust(delta int) {
	switch s.Mode {
	case ModeFocus:
		s.FocusMinutes += delta
		if s.FocusMinutes < 1 {
			s.FocusMinutes = 1
		}
	case ModeRest:
		s.RestMinutes += delta
		if s.RestMinutes < 1 {
			s.RestMinutes = 1
		}
	}
	if !s.Running {
		s.Remaining = s.phaseDuration() * 60
	}
}

// Tick advances the countdown by one second. Reaching zero flips the mode,
// reloads the new phase duration, and keeps the timer running.
func (s *TimerState) Tick() {
	if !s.Running {
		return
	}
	s.Remaining--
	if s.Remaining > 0 {
		return
	}
	if s.Mode == ModeFocus {
		s.Mode = ModeRest
	} else {
		s.Mode = ModeFocus
	}
	s.Remaining = s.phaseDuration() * 60
}

func (s *TimerState) phaseDuration() int {
	if s.Mode == ModeRest {
		return s.RestMinutes
	}
	return s.FocusMinutes
}

// ModeLabel returns the display name of the current phase.
func (s *TimerState) ModeLabel() string {
	if s.Mode == ModeRest {
		return "Rest"
	}
	return "Focus"
}

// Clock formats the remaining time as MM:SS.
func (s *TimerState) Clock() string {
	if s.Remaining < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", s.Remaining/60, s.Remaining%60)
}

// TimerTickMsg drives the one-second countdown.
type TimerTickMsg struct{}

// Timer is the focus timer widget.
type Timer struct {
	state  *TimerState
	width  int
	height int
}

// NewTimer creates the focus timer widget.
func NewTimer() *Timer {
	return &Timer{state: NewTimerState()}
}

// Init initializes the timer.
func (t *Timer) Init() tea.Cmd {
	return nil
}

// State exposes the timer state.
func (t *Timer) State() *TimerState {
	return t.state
}

// Pause stops the countdown without resetting it. Any tick already
// scheduled drains through Update as a no-op once Running is false.
func (t *Timer) Pause() {
	t.state.Running = false
}

// SetSize sets the widget dimensions.
func (t *Timer) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Update handles timer events.
func (t *Timer) Update(msg tea.Msg) (*Timer, tea.Cmd) {
	switch msg := msg.(type) {
	case TimerTickMsg:
		t.state.Tick()
		if t.state.Running {
			return t, t.tick()
		}
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space":
			t.state.Toggle()
			if t.state.Running {
				return t, t.tick()
			}
		case "r":
			t.state.Reset()
		case "+", "=":
			t.state.Adjust(1)
		case "-", "_":
			t.state.Adjust(-1)
		}
	}
	return t, nil
}

func (t *Timer) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TimerTickMsg{}
	})
}

// View renders the timer.
func (t *Timer) View() string {
	th := styles.CurrentTheme()

	modeStyle := th.S().Primary
	if t.state.Mode == ModeRest {
		modeStyle = th.S().Secondary
	}

	title := th.S().Title.Render("Focus Timer")
	mode := modeStyle.Bold(true).Render(t.state.ModeLabel())
	clock := th.S().Text.Bold(true).Render(t.state.Clock())

	status := "paused"
	if t.state.Running {
		status = "running"
	}
	meta := th.S().Muted.Render(fmt.Sprintf(
		"%s • focus %dm / rest %dm", status, t.state.FocusMinutes, t.state.RestMinutes))
	help := th.S().Subtle.Render("space start/pause • +/- adjust • r reset • esc close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", mode, clock, "", meta, help)
	return lipgloss.Place(t.width, t.height, lipgloss.Center, lipgloss.Center, content)
}
