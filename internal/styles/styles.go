// Package styles defines shared lipgloss styles for terminal output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
)

// Styles is a palette bound to one output. Colors are dropped automatically
// when the output is not a terminal.
type Styles struct {
	// Title for task headers
	Title lipgloss.Style

	// Subtle for hints and secondary text
	Subtle lipgloss.Style

	// Name for task names in listings
	Name lipgloss.Style

	// Success for completion messages
	Success lipgloss.Style

	// Error for diagnostics
	Error lipgloss.Style
}

// For returns the palette rendered for w.
func For(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(primaryColor),
		Subtle:  r.NewStyle().Foreground(secondaryColor),
		Name:    r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(successColor),
		Error:   r.NewStyle().Bold(true).Foreground(errorColor),
	}
}
