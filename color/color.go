// Package color names the ANSI colors used in terminal output.
package color

import "github.com/charmbracelet/lipgloss"

// ANSI 16-color palette entries, so output follows the terminal theme.
var (
	Red      = lipgloss.Color("1")
	Green    = lipgloss.Color("2")
	Yellow   = lipgloss.Color("3")
	Blue     = lipgloss.Color("4")
	Purple   = lipgloss.Color("5")
	Cyan     = lipgloss.Color("6")
	White    = lipgloss.Color("7")
	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
)
