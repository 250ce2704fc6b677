package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lvoisin/crewctl/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthColor returns the style corresponding to the given health state.
func HealthColor(state domain.HealthState) lipgloss.Style {
	switch state {
	case domain.HealthStable:
		return StyleGreen
	case domain.HealthWarning:
		return StyleYellow
	case domain.HealthCritical:
		return StyleRed
	case domain.HealthOverdue:
		return StylePurple
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored indicator string such as "● CRITICAL".
func HealthIndicator(state domain.HealthState) string {
	switch state {
	case domain.HealthStable:
		return StyleGreen.Render("● STABLE")
	case domain.HealthWarning:
		return StyleYellow.Render("● WARNING")
	case domain.HealthCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.HealthOverdue:
		return StylePurple.Render("● OVERDUE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// PriorityColor returns the style for a task priority.
func PriorityColor(p domain.TaskPriority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	default:
		return StyleDim
	}
}

// ScoreIndicator renders a match score with a color keyed to its value.
func ScoreIndicator(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	switch {
	case score >= 10:
		return StyleGreen.Render(s)
	case score >= 5:
		return StyleYellow.Render(s)
	default:
		return StyleDim.Render(s)
	}
}

// Header renders a section header with the orange header style and an
// underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
