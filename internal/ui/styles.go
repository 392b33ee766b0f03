package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, chosen against the terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorError     lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors(theme string) {
	if theme == "" {
		theme = os.Getenv("AI_PROMPT_TOOL_THEME")
	}

	switch theme {
	case "light":
		setLightThemeColors()
	case "dark":
		setDarkThemeColors()
	default:
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorAccent = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("238")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorAccent = lipgloss.Color("130")
	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("248")
}

// Shared styles, built after initializeColors has run
func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
}

func statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorTextMuted)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
}
