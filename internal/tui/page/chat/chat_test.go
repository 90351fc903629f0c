package chat

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/havenchat/haven/internal/tui/components/tools"
)

func TestCloseOverlayStopsWidgets(t *testing.T) {
	t.Run("timer stops when its overlay closes", func(t *testing.T) {
		m := New(nil, nil, nil)
		m.activeOverlay = overlayTimer
		m.timer.State().Toggle()

		m.closeOverlay()

		if m.activeOverlay != overlayNone {
			t.Error("overlay still open after close")
		}
		if m.timer.State().Running {
			t.Fatal("timer still running after its overlay closed")
		}

		// A tick scheduled before the close must drain without rescheduling.
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(tools.TimerTickMsg{})
		if cmd != nil {
			t.Error("timer tick rescheduled after overlay closed")
		}
	})

	t.Run("breathing stops when its overlay closes", func(t *testing.T) {
		m := New(nil, nil, nil)
		m.activeOverlay = overlayBreathing
		m.breathing.State().Toggle()

		m.closeOverlay()

		if m.breathing.State().Running {
			t.Fatal("breathing exercise still running after its overlay closed")
		}

		var cmd tea.Cmd
		m.breathing, cmd = m.breathing.Update(tools.BreathTickMsg{})
		if cmd != nil {
			t.Error("breathing tick rescheduled after overlay closed")
		}
	})
}
