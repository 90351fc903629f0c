// Package page defines page identifiers for the TUI.
package page

// ID identifies a top-level page.
type ID string

// Page identifiers.
const (
	Chat ID = "chat"
)

// ChangeMsg requests switching to another page.
type ChangeMsg struct {
	Page ID
}
