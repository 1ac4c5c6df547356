// Package ui holds the terminal styling shared by loggraph commands
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Icons
const (
	IconCommit = "●"
	IconHidden = "┆"
	IconCheck  = "✓"
	IconCross  = "✗"
	IconBranch = "⎇"
)

var (
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D7FF"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF87"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF"))
	blue    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))

	header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#00D7FF")).
		Padding(0, 1)
)

var plain bool

// SetColor turns styling on or off for every helper in this package
func SetColor(enabled bool) {
	plain = !enabled
}

func render(style lipgloss.Style, text string) string {
	if plain {
		return text
	}
	return style.Render(text)
}

func Yellow(text string) string  { return render(yellow, text) }
func Cyan(text string) string    { return render(cyan, text) }
func Green(text string) string   { return render(green, text) }
func Red(text string) string     { return render(red, text) }
func Magenta(text string) string { return render(magenta, text) }
func Blue(text string) string    { return render(blue, text) }

// Header renders a section title
func Header(title string) string {
	return render(header, title)
}

// Success formats a one line success message
func Success(format string, args ...any) string {
	return fmt.Sprintf("%s %s", Green(IconCheck), fmt.Sprintf(format, args...))
}

// Failure formats a one line failure message
func Failure(format string, args ...any) string {
	return fmt.Sprintf("%s %s", Red(IconCross), fmt.Sprintf(format, args...))
}
