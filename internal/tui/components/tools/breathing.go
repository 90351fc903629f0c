package tools

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/tui/styles"
)

// BreathPhase is one step of the breathing cycle.
type BreathPhase int

// Breathing phases, in cycle order.
const (
	PhaseInhale BreathPhase = iota
	PhaseHold
	PhaseExhale
)

// Phase lengths in seconds for the 4-7-8 pattern.
const (
	InhaleSeconds = 4
	HoldSeconds   = 7
	ExhaleSeconds = 8
)

// BreathingState holds the exercise logic, independent of rendering.
type BreathingState struct {
	Phase     BreathPhase
	Remaining int // seconds left in the current phase
	Cycles    int // completed full cycles
	Running   bool
}

// NewBreathingState creates a stopped exercise at the start of an inhale.
func NewBreathingState() *BreathingState {
	return &BreathingState{
		Phase:     PhaseInhale,
		Remaining: InhaleSeconds,
	}
}

// Toggle starts or pauses the exercise.
func (s *BreathingState) Toggle() {
	s.Running = !s.Running
}

// Reset stops the exercise and returns to the start of an inhale.
func (s *BreathingState) Reset() {
	s.Running = false
	s.Phase = PhaseInhale
	s.Remaining = InhaleSeconds
	s.Cycles = 0
}

// Tick advances the exercise by one second, wrapping through
// inhale, hold, and exhale indefinitely.
func (s *BreathingState) Tick() {
	if !s.Running {
		return
	}
	s.Remaining--
	if s.Remaining > 0 {
		return
	}
	switch s.Phase {
	case PhaseInhale:
		s.Phase = PhaseHold
		s.Remaining = HoldSeconds
	case PhaseHold:
		s.Phase = PhaseExhale
		s.Remaining = ExhaleSeconds
	case PhaseExhale:
		s.Phase = PhaseInhale
		s.Remaining = InhaleSeconds
		s.Cycles++
	}
}

// PhaseLabel returns the instruction for the current phase.
func (s *BreathingState) PhaseLabel() string {
	switch s.Phase {
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Breathe out"
	default:
		return "Breathe in"
	}
}

// BreathTickMsg drives the one-second phase countdown.
type BreathTickMsg struct{}

// Breathing is the guided breathing widget.
type Breathing struct {
	state  *BreathingState
	width  int
	height int
}

// NewBreathing creates the breathing widget.
func NewBreathing() *Breathing {
	return &Breathing{state: NewBreathingState()}
}

// Init initializes the widget.
func (b *Breathing) Init() tea.Cmd {
	return nil
}

// State exposes the exercise state.
func (b *Breathing) State() *BreathingState {
	return b.state
}

// Pause stops the exercise without resetting it. Any tick already
// scheduled drains through Update as a no-op once Running is false.
func (b *Breathing) Pause() {
	b.state.Running = false
}

// SetSize sets the widget dimensions.
func (b *Breathing) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Update handles breathing events.
func (b *Breathing) Update(msg tea.Msg) (*Breathing, tea.Cmd) {
	switch msg := msg.(type) {
	case BreathTickMsg:
		b.state.Tick()
		if b.state.Running {
			return b, b.tick()
		}
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space":
			b.state.Toggle()
			if b.state.Running {
				return b, b.tick()
			}
		case "r":
			b.state.Reset()
		}
	}
	return b, nil
}

func (b *Breathing) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return BreathTickMsg{}
	})
}

// View renders the breathing exercise.
func (b *Breathing) View() string {
	th := styles.CurrentTheme()

	phaseStyle := th.S().Primary
	switch b.state.Phase {
	case PhaseHold:
		phaseStyle = th.S().Warning
	case PhaseExhale:
		phaseStyle = th.S().Secondary
	}

	title := th.S().Title.Render("Breathing Exercise")
	pattern := th.S().Muted.Render("in for 4 • hold for 7 • out for 8")
	phase := phaseStyle.Bold(true).Render(b.state.PhaseLabel())
	count := th.S().Text.Bold(true).Render(fmt.Sprintf("%d", b.state.Remaining))

	status := "paused"
	if b.state.Running {
		status = fmt.Sprintf("cycle %d", b.state.Cycles+1)
	}
	meta := th.S().Muted.Render(status)
	help := th.S().Subtle.Render("space start/pause • r restart • esc close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, pattern, "", phase, count, "", meta, help)
	return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, content)
}
