package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo-journal/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for section headers.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// TitleStyle renders todo titles.
var TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)

// MetaStyle renders ids, timestamps and counts.
var MetaStyle = lipgloss.NewStyle().Foreground(ColorGray)

// PanelStyle wraps a todo's detail view.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for hints and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// CheckboxStyle colors an embedded task by its completion state.
func CheckboxStyle(done bool) lipgloss.Style {
	if done {
		return lipgloss.NewStyle().Foreground(ColorGreen).Strikethrough(true)
	}
	return lipgloss.NewStyle().Foreground(ColorWhite)
}

// ActionStyle returns a color-coded badge style for an activity action.
func ActionStyle(action model.ActionType) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch action {
	case model.ActionCreate:
		return base.Foreground(ColorBlue)
	case model.ActionComplete:
		return base.Foreground(ColorGreen)
	case model.ActionUncomplete:
		return base.Foreground(ColorYellow)
	case model.ActionUpdateContent:
		return base.Foreground(ColorMagenta)
	case model.ActionDelete:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}
