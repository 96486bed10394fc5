package styles

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/poisepms/poise/internal/config"
	"github.com/poisepms/poise/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Deadline:", "Paid:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	OverdueStyle   lipgloss.Style
	FinalisedStyle lipgloss.Style
	SuccessStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	OverdueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)

	FinalisedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle)).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Amount renders money with the configured currency symbol, e.g. "R 1500.00"
func Amount(currency string, m models.Money) string {
	if currency == "" {
		return m.String()
	}
	return currency + " " + m.String()
}

// Field renders a "Label: value" line
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// ProjectLine renders a one-line summary used by list output
// Format: "#12  House Doe  due 2030-01-31  R 2000.00 outstanding"
func ProjectLine(p *models.Project, currency string, overdue bool) string {
	line := fmt.Sprintf("%s  %s  %s  %s",
		TitleStyle.Render(fmt.Sprintf("#%d", p.Number())),
		ValueStyle.Render(p.Name()),
		SubtitleStyle.Render("due "+models.FormatDate(p.Deadline())),
		ValueStyle.Render(Amount(currency, p.Outstanding())+" outstanding"),
	)
	if p.IsFinalized() {
		done, _ := p.CompletionDate()
		line += "  " + FinalisedStyle.Render("finalised "+models.FormatDate(done))
	} else if overdue {
		line += "  " + OverdueStyle.Render("OVERDUE")
	}
	return line
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
