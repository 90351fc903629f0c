package styles

// NewDefaultTheme creates the calm green/teal theme used by Haven.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		// Soft greens and teals, easy on the eyes late at night
		Primary:   ParseHex("#8ec07c"), // Sage green
		Secondary: ParseHex("#83a598"), // Muted teal
		Tertiary:  ParseHex("#3c3836"), // Warm dark gray
		Accent:    ParseHex("#d3869b"), // Gentle pink accent

		// Dark backgrounds
		BgBase:    ParseHex("#1d2021"), // Near-black
		BgSubtle:  ParseHex("#282828"), // Slightly lighter
		BgOverlay: ParseHex("#32302f"), // Overlay background

		// Light foregrounds
		FgBase:   ParseHex("#ebdbb2"), // Warm off-white
		FgMuted:  ParseHex("#a89984"), // Muted tan
		FgSubtle: ParseHex("#665c54"), // Subtle brown-gray

		// Borders
		Border:      ParseHex("#3c3836"),
		BorderFocus: ParseHex("#8ec07c"),

		// Status colors
		Success: ParseHex("#b8bb26"), // Green
		Error:   ParseHex("#fb4934"), // Red
		Warning: ParseHex("#fabd2f"), // Yellow
		Info:    ParseHex("#83a598"), // Teal
	}
}
