package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// faceColor is the foreground for card faces and player lines. It flips
// with the terminal background so black suits stay legible on light
// terminals.
var faceColor = pickFaceColor()

func pickFaceColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color("#FAFAFA")
	}
	return lipgloss.Color("#1A1A1A")
}

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	StageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	PotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(faceColor).
			Bold(true)

	BackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	TurnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PlayerStyle = lipgloss.NewStyle().
			Foreground(faceColor)

	FoldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
