package tools

import "testing"

func TestTimerState(t *testing.T) {
	t.Run("starts stopped in focus mode", func(t *testing.T) {
		s := NewTimerState()

		if s.Running {
			t.Error("Running = true, want false")
		}
		if s.Mode != ModeFocus {
			t.Errorf("Mode = %v, want ModeFocus", s.Mode)
		}
		if s.Remaining != DefaultFocusMinutes*60 {
			t.Errorf("Remaining = %d, want %d", s.Remaining, DefaultFocusMinutes*60)
		}
	})

	t.Run("ticks only while running", func(t *testing.T) {
		s := NewTimerState()

		s.Tick()
		if s.Remaining != DefaultFocusMinutes*60 {
			t.Error("stopped timer should not tick down")
		}

		s.Toggle()
		s.Tick()
		if s.Remaining != DefaultFocusMinutes*60-1 {
			t.Errorf("Remaining = %d, want %d", s.Remaining, DefaultFocusMinutes*60-1)
		}
	})

	t.Run("expiry flips mode and keeps running", func(t *testing.T) {
		s := NewTimerState()
		s.Toggle()

		for i := 0; i < DefaultFocusMinutes*60; i++ {
			s.Tick()
		}

		if s.Mode != ModeRest {
			t.Errorf("Mode = %v, want ModeRest after focus expires", s.Mode)
		}
		if s.Remaining != s.RestMinutes*60 {
			t.Errorf("Remaining = %d, want %d", s.Remaining, s.RestMinutes*60)
		}
		if !s.Running {
			t.Error("Running = false, want true across the flip")
		}
	})

	t.Run("cycles continuously", func(t *testing.T) {
		s := NewTimerState()
		s.Toggle()

		total := (s.FocusMinutes + s.RestMinutes) * 60
		for i := 0; i < total; i++ {
			s.Tick()
		}

		if s.Mode != ModeFocus {
			t.Errorf("Mode = %v, want ModeFocus after one full cycle", s.Mode)
		}
		if !s.Running {
			t.Error("Running = false, want true after one full cycle")
		}
	})

	t.Run("adjust floors at one minute", func(t *testing.T) {
		s := NewTimerState()

		s.Adjust(-100)
		if s.FocusMinutes != 1 {
			t.Errorf("FocusMinutes = %d, want 1", s.FocusMinutes)
		}
		if s.Remaining != 60 {
			t.Errorf("Remaining = %d, want 60 after adjust while stopped", s.Remaining)
		}
	})

	t.Run("adjust targets the current mode", func(t *testing.T) {
		s := NewTimerState()
		s.Mode = ModeRest
		s.Remaining = s.RestMinutes * 60

		s.Adjust(2)
		if s.RestMinutes != DefaultRestMinutes+2 {
			t.Errorf("RestMinutes = %d, want %d", s.RestMinutes, DefaultRestMinutes+2)
		}
		if s.FocusMinutes != DefaultFocusMinutes {
			t.Errorf("FocusMinutes = %d, want unchanged %d", s.FocusMinutes, DefaultFocusMinutes)
		}
	})

	t.Run("adjust while running leaves the countdown alone", func(t *testing.T) {
		s := NewTimerState()
		s.Toggle()
		s.Tick()
		before := s.Remaining

		s.Adjust(5)
		if s.Remaining != before {
			t.Errorf("Remaining = %d, want %d", s.Remaining, before)
		}
	})

	t.Run("reset reloads and stops", func(t *testing.T) {
		s := NewTimerState()
		s.Toggle()
		for i := 0; i < 90; i++ {
			s.Tick()
		}

		s.Reset()
		if s.Running {
			t.Error("Running = true after Reset")
		}
		if s.Remaining != s.FocusMinutes*60 {
			t.Errorf("Remaining = %d, want %d", s.Remaining, s.FocusMinutes*60)
		}
	})

	t.Run("clock formats minutes and seconds", func(t *testing.T) {
		s := NewTimerState()
		s.Remaining = 65
		if got := s.Clock(); got != "01:05" {
			t.Errorf("Clock() = %q, want %q", got, "01:05")
		}
		s.Remaining = 1500
		if got := s.Clock(); got != "25:00" {
			t.Errorf("Clock() = %q, want %q", got, "25:00")
		}
	})
}

func TestTimerPause(t *testing.T) {
	t.Run("pause ends the tick chain", func(t *testing.T) {
		w := NewTimer()
		w.State().Toggle()
		w.Pause()

		if w.State().Running {
			t.Fatal("Running = true after Pause")
		}

		w, cmd := w.Update(TimerTickMsg{})
		if cmd != nil {
			t.Error("a tick arriving after Pause should not reschedule")
		}
		if w.State().Remaining != DefaultFocusMinutes*60 {
			t.Errorf("Remaining = %d after Pause, want %d", w.State().Remaining, DefaultFocusMinutes*60)
		}
	})

	t.Run("pause keeps the countdown position", func(t *testing.T) {
		w := NewTimer()
		w.State().Toggle()
		w.State().Tick()
		w.Pause()

		if w.State().Remaining != DefaultFocusMinutes*60-1 {
			t.Errorf("Remaining = %d, want %d", w.State().Remaining, DefaultFocusMinutes*60-1)
		}
	})
}
