package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item              *lipgloss.Style
	HoveredItem       *lipgloss.Style
	Center            *lipgloss.Style
	Touch             *lipgloss.Style
	Flash             *lipgloss.Style
	PopoverRow        *lipgloss.Style
	PopoverSelected   *lipgloss.Style
	ListingItem       *lipgloss.Style
	ListingSelected   *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	EditorTitle       *lipgloss.Style
	EditorPanel       *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	HoveredItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Center: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Touch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Flash: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	PopoverRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PopoverSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ListingItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ListingSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	EditorTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	EditorPanel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Accent returns base recoloured with a "#RRGGBB" accent. Pure black and
// white accents keep the base foreground so labels stay readable on dark
// and light terminals.
func Accent(base *lipgloss.Style, accent string) lipgloss.Style {
	style := *base
	switch accent {
	case "", "#000000", "#FFFFFF", "#ffffff":
		return style
	}
	return style.Foreground(lipgloss.Color(accent))
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
