package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Usage colors
const (
	ColorFree Color = "2"   // Green - unused data
	ColorUsed Color = "208" // Orange - used data
)

// Expiry colors
const (
	ColorExpiring Color = "1" // Red - near expiry, top up
	ColorValid    Color = "6" // Cyan - plenty of days left
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorSpinner Color = "205" // Pink
)
