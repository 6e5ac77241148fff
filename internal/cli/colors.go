package cli

import "github.com/charmbracelet/lipgloss"

// Groove colour palette 🎧
// Shared groove theme colours for consistent branding across CLI and TUI
var (
	// Core groove colours (cool to warm)
	GrooveViolet = lipgloss.Color("#8338EC") // Electric violet
	GrooveBlue   = lipgloss.Color("#3A86FF") // Club blue
	GrooveTeal   = lipgloss.Color("#06D6A0") // Neon teal
	GrooveGold   = lipgloss.Color("#FFD166") // Strobe gold

	// Accent colours
	SlateGray = lipgloss.Color("#8D99AE") // Slate for subtle text
)
