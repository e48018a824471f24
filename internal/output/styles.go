package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/pgap/internal/domain"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#F2C94C")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorMuted   = lipgloss.Color("#767676")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderBottom(true).
			BorderForeground(ColorPrimary)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Width(34).
			Foreground(ColorMuted)

	ValueStyle = lipgloss.NewStyle().Bold(true)

	NoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)
)

// StatusStyle returns the style used for a funding status
func StatusStyle(status domain.FundingStatus) lipgloss.Style {
	switch status {
	case domain.StatusOnTrack:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	case domain.StatusClose:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	}
}

// StatusLabel returns the display text of a funding status
func StatusLabel(status domain.FundingStatus) string {
	switch status {
	case domain.StatusOnTrack:
		return "On track"
	case domain.StatusClose:
		return "Close to target"
	default:
		return "Funding gap"
	}
}

// ProgressBar renders a percentage as a horizontal bar
type ProgressBar struct {
	Percent int
	Width   int
	Status  domain.FundingStatus
}

// NewProgressBar creates a 40-column bar for percent
func NewProgressBar(percent int, status domain.FundingStatus) *ProgressBar {
	return &ProgressBar{Percent: percent, Width: 40, Status: status}
}

// Render returns the styled bar followed by the percentage.
// Percentages above 100 fill the bar but are printed as-is.
func (p *ProgressBar) Render() string {
	filled := p.Width * p.Percent / 100
	if filled > p.Width {
		filled = p.Width
	}
	if filled < 0 {
		filled = 0
	}

	bar := StatusStyle(p.Status).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", p.Width-filled))
	return fmt.Sprintf("%s %d%%", bar, p.Percent)
}
