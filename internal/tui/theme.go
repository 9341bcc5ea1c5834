package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name          string
	Border        lipgloss.Color
	Header        lipgloss.Style
	Task          lipgloss.Style
	CompletedTask lipgloss.Style
	Break         lipgloss.Style
	Input         lipgloss.Style
	Focused       lipgloss.Style
	Dim           lipgloss.Style
	Highlight     lipgloss.Style
	Error         lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:          "Default",
		Border:        lipgloss.Color("63"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Task:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CompletedTask: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Break:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	},
	"dracula": {
		Name:          "Dracula",
		Border:        lipgloss.Color("62"),                                                                   // Purple
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Task:          lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		CompletedTask: lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Break:         lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	},
}

// CurrentTheme holds the active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches to the named theme. Unknown names keep the current one.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if ok {
		CurrentTheme = t
	}
	return ok
}
