// Package util provides shared helpers for TUI components.
package util

import (
	tea "charm.land/bubbletea/v2"
)

// Model is the interface pages and components implement on top of the
// Bubble Tea contract. Update returns the concrete component so callers
// can keep typed references.
type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) (Model, tea.Cmd)
	View() string
}

// CmdHandler wraps a message in a command that delivers it on the next tick.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// InfoMsg carries a transient status line for display.
type InfoMsg struct {
	Msg string
}

// ReportInfo creates a command that shows a status line.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Msg: msg})
}
