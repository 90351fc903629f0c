// Package styles provides theming for the Haven TUI.
package styles

import (
	"image/color"
	"strconv"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme holds the color palette for the UI.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles     *Styles
	stylesOnce sync.Once
}

// Styles is the set of pre-built lipgloss styles derived from the theme.
type Styles struct {
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Title     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// S returns the style set for the theme, building it on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = &Styles{
			Text:      lipgloss.NewStyle().Foreground(t.FgBase),
			Muted:     lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:    lipgloss.NewStyle().Foreground(t.FgSubtle),
			Primary:   lipgloss.NewStyle().Foreground(t.Primary),
			Secondary: lipgloss.NewStyle().Foreground(t.Secondary),
			Accent:    lipgloss.NewStyle().Foreground(t.Accent),
			Title:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Success:   lipgloss.NewStyle().Foreground(t.Success),
			Error:     lipgloss.NewStyle().Foreground(t.Error),
			Warning:   lipgloss.NewStyle().Foreground(t.Warning),
			Info:      lipgloss.NewStyle().Foreground(t.Info),
		}
	})
	return t.styles
}

// ParseHex converts a "#rrggbb" string to a color. Invalid input yields black.
func ParseHex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.Black
	}
	r, errR := strconv.ParseUint(s[1:3], 16, 8)
	g, errG := strconv.ParseUint(s[3:5], 16, 8)
	b, errB := strconv.ParseUint(s[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

var (
	currentTheme *Theme
	themeMu      sync.RWMutex
)

// NewManager initializes the theme system with the default theme.
func NewManager() {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = NewDefaultTheme()
}

// CurrentTheme returns the active theme, initializing the default on demand.
func CurrentTheme() *Theme {
	themeMu.RLock()
	t := currentTheme
	themeMu.RUnlock()
	if t != nil {
		return t
	}

	themeMu.Lock()
	defer themeMu.Unlock()
	if currentTheme == nil {
		currentTheme = NewDefaultTheme()
	}
	return currentTheme
}
