package tools

import "testing"

func TestBreathingState(t *testing.T) {
	t.Run("starts stopped at inhale", func(t *testing.T) {
		s := NewBreathingState()

		if s.Running {
			t.Error("Running = true, want false")
		}
		if s.Phase != PhaseInhale {
			t.Errorf("Phase = %v, want PhaseInhale", s.Phase)
		}
		if s.Remaining != InhaleSeconds {
			t.Errorf("Remaining = %d, want %d", s.Remaining, InhaleSeconds)
		}
	})

	t.Run("advances through the cycle", func(t *testing.T) {
		s := NewBreathingState()
		s.Toggle()

		for i := 0; i < InhaleSeconds; i++ {
			s.Tick()
		}
		if s.Phase != PhaseHold || s.Remaining != HoldSeconds {
			t.Errorf("after inhale: phase=%v remaining=%d, want hold/%d", s.Phase, s.Remaining, HoldSeconds)
		}

		for i := 0; i < HoldSeconds; i++ {
			s.Tick()
		}
		if s.Phase != PhaseExhale || s.Remaining != ExhaleSeconds {
			t.Errorf("after hold: phase=%v remaining=%d, want exhale/%d", s.Phase, s.Remaining, ExhaleSeconds)
		}
	})

	t.Run("wraps to inhale and counts the cycle", func(t *testing.T) {
		s := NewBreathingState()
		s.Toggle()

		total := InhaleSeconds + HoldSeconds + ExhaleSeconds
		for i := 0; i < total; i++ {
			s.Tick()
		}

		if s.Phase != PhaseInhale {
			t.Errorf("Phase = %v, want PhaseInhale after a full cycle", s.Phase)
		}
		if s.Cycles != 1 {
			t.Errorf("Cycles = %d, want 1", s.Cycles)
		}
		if !s.Running {
			t.Error("Running = false, want true (loops indefinitely)")
		}
	})

	t.Run("does not tick while paused", func(t *testing.T) {
		s := NewBreathingState()
		s.Tick()
		if s.Remaining != InhaleSeconds {
			t.Error("paused exercise should not advance")
		}
	})

	t.Run("reset returns to the start", func(t *testing.T) {
		s := NewBreathingState()
		s.Toggle()
		for i := 0; i < 10; i++ {
			s.Tick()
		}

		s.Reset()
		if s.Running || s.Phase != PhaseInhale || s.Remaining != InhaleSeconds || s.Cycles != 0 {
			t.Errorf("Reset left state %+v, want stopped inhale start", s)
		}
	})
}

func TestBreathingPause(t *testing.T) {
	t.Run("pause ends the tick chain", func(t *testing.T) {
		w := NewBreathing()
		w.State().Toggle()
		w.Pause()

		if w.State().Running {
			t.Fatal("Running = true after Pause")
		}

		w, cmd := w.Update(BreathTickMsg{})
		if cmd != nil {
			t.Error("a tick arriving after Pause should not reschedule")
		}
		if w.State().Phase != PhaseInhale || w.State().Remaining != InhaleSeconds {
			t.Errorf("state advanced after Pause: %+v", w.State())
		}
	})
}
