// Package style wraps lipgloss into small render functions for terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidqueue/vidqueue/color"
)

// Semantic colors used by boxed messages.
var (
	AccentColor = color.Purple
	TextColor   = color.White
	ErrorColor  = color.HiRed
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function rendering its argument in the c foreground color.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

func Faint(s string) string {
	return New().Faint(true).Render(s)
}

func Bold(s string) string {
	return New().Bold(true).Render(s)
}
