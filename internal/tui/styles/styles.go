// Package styles holds the dashboard palette and lipgloss styles.
package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors, resolved from the catppuccin palette by Use.
var (
	Primary   lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	TextMuted lipgloss.TerminalColor
	TextDim   lipgloss.TerminalColor
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Active    lipgloss.Style
	Banner    lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	Use("auto")
}

// color picks a palette entry for the theme. "auto" adapts to the terminal
// background using Latte on light and Mocha on dark.
func color(theme string, pick func(catppuccin.Flavor) catppuccin.Color) lipgloss.TerminalColor {
	switch theme {
	case "light":
		return lipgloss.Color(pick(catppuccin.Latte).Hex)
	case "dark":
		return lipgloss.Color(pick(catppuccin.Mocha).Hex)
	default:
		return lipgloss.AdaptiveColor{
			Light: pick(catppuccin.Latte).Hex,
			Dark:  pick(catppuccin.Mocha).Hex,
		}
	}
}

// Use rebuilds every style for a theme: auto, dark or light.
func Use(theme string) {
	Primary = color(theme, catppuccin.Flavor.Mauve)
	Success = color(theme, catppuccin.Flavor.Green)
	Warning = color(theme, catppuccin.Flavor.Peach)
	Error = color(theme, catppuccin.Flavor.Red)
	Border = color(theme, catppuccin.Flavor.Surface2)
	Text = color(theme, catppuccin.Flavor.Text)
	TextMuted = color(theme, catppuccin.Flavor.Subtext0)
	TextDim = color(theme, catppuccin.Flavor.Overlay0)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Success)
	Paused = lipgloss.NewStyle().Foreground(Warning)
	Active = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Error).
		Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
