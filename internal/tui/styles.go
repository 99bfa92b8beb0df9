package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary     = lipgloss.Color("#2563EB")
	colorMuted       = lipgloss.Color("#6B7280")
	colorBorder      = lipgloss.Color("#D1D5DB")
	colorDestructive = lipgloss.Color("#DC2626")
	colorSuccess     = lipgloss.Color("#16A34A")
	colorOnPrimary   = lipgloss.Color("#FFFFFF")
)

// Styles groups the lipgloss styles used by the wizard views.
type Styles struct {
	Card           lipgloss.Style
	Title          lipgloss.Style
	Label          lipgloss.Style
	Focused        lipgloss.Style
	Muted          lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Alert          lipgloss.Style
	Success        lipgloss.Style
	StepActive     lipgloss.Style
	StepInactive   lipgloss.Style
}

// DefaultStyles returns the wizard's style set.
func DefaultStyles() Styles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(72),
		Title:          lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Label:          lipgloss.NewStyle().Bold(true),
		Focused:        lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Muted:          lipgloss.NewStyle().Foreground(colorMuted),
		Button:         button.Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorBorder),
		ButtonFocused:  button.Background(colorPrimary).Foreground(colorOnPrimary).Bold(true),
		ButtonDisabled: button.Foreground(colorMuted).Faint(true),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorDestructive).
			Foreground(colorDestructive).
			PaddingLeft(1),
		Success: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Foreground(colorSuccess).
			Padding(1, 2),
		StepActive:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		StepInactive: lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// button renders a labelled control. Disabled wins over focus.
func (s Styles) button(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return s.ButtonDisabled.Render(label)
	case focused:
		return s.ButtonFocused.Render(label)
	default:
		return s.Button.Render(label)
	}
}

// card wraps body in the bordered container with an optional heading.
func (s Styles) card(title string, body ...string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(s.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(body, "\n"))
	return s.Card.Render(b.String())
}

func (s Styles) alert(msg string) string {
	if msg == "" {
		return ""
	}
	return s.Alert.Render(msg)
}
