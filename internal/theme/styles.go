package theme

import "github.com/charmbracelet/lipgloss"

// Widget styles
var (
	CardStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	UpdatedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	WidgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// Usage styles
var (
	FreeStyle = lipgloss.NewStyle().
			Foreground(ColorFree)

	UsedStyle = lipgloss.NewStyle().
			Foreground(ColorUsed)
)

// Expiry styles
var (
	ExpiringStyle = lipgloss.NewStyle().
			Foreground(ColorExpiring).
			Bold(true)

	ValidStyle = lipgloss.NewStyle().
			Foreground(ColorValid)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0, 0, 0)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// ErrorDetailStyle is used for the hint under an error
var ErrorDetailStyle = lipgloss.NewStyle().
	Foreground(ColorError)

// ExpiryStyle returns the style for the days-remaining line
func ExpiryStyle(nearExpiry bool) lipgloss.Style {
	if nearExpiry {
		return ExpiringStyle
	}
	return ValidStyle
}
