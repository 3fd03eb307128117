package ui

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/theme"
)

const (
	// BarWidth is the number of cells in the usage bar
	BarWidth = 24

	barCell = "█"

	widgetTitle = "Data usage"
)

// RenderWidget renders the payload as the boxed terminal widget
func RenderWidget(payload domain.WidgetPayload) string {
	lines := []string{theme.TitleStyle.Render(widgetTitle), ""}

	if payload.Failed() {
		lines = append(lines,
			theme.ErrorStyle.Render(payload.Failure.Message),
			theme.ErrorDetailStyle.Render(payload.Failure.Detail),
		)
		return theme.WidgetStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	s := payload.Summary
	lines = append(lines,
		theme.CardStyle.Render("Card: "+s.Card),
		RenderBar(s.UsagePercentage, BarWidth),
		theme.StatsStyle.Render(fmt.Sprintf("%s / %s GB (%s%%)",
			FormatNumber(s.UsedGB), FormatNumber(s.TotalGB), FormatNumber(s.UsagePercentage))),
		theme.UsedStyle.Render(fmt.Sprintf("Used: %s GB", FormatNumber(s.UsedGB))),
		theme.FreeStyle.Render(fmt.Sprintf("Free: %s GB", FormatNumber(s.FreeGB))),
		theme.ExpiryStyle(s.NearExpiry).Render(ExpiryLabel(s.DaysRemaining, s.NearExpiry)),
		"",
		theme.UpdatedStyle.Render(UpdatedLabel(payload.UpdatedAt)),
	)

	return theme.WidgetStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderStatusLine renders the payload as a single line for status bars
func RenderStatusLine(payload domain.WidgetPayload) string {
	if payload.Failed() {
		return fmt.Sprintf("card: %s", payload.Failure.Message)
	}

	s := payload.Summary
	line := fmt.Sprintf("card %s/%sGB %s%% %dd",
		FormatNumber(s.UsedGB), FormatNumber(s.TotalGB), FormatNumber(s.UsagePercentage), s.DaysRemaining)
	if s.NearExpiry {
		line += " top up!"
	}
	return line
}

// RenderJSON encodes the payload for the render sink: the card summary on
// success, the fixed failure notice otherwise
func RenderJSON(payload domain.WidgetPayload) ([]byte, error) {
	var v any = payload.Summary
	if payload.Failed() {
		v = payload.Failure
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}

// RenderBar draws a bar with used cells on the left and free cells on the right
func RenderBar(usagePercentage float64, width int) string {
	used, free := SplitBar(usagePercentage, width)
	return theme.UsedStyle.Render(strings.Repeat(barCell, used)) +
		theme.FreeStyle.Render(strings.Repeat(barCell, free))
}

// SplitBar returns the number of used and free cells for a bar of width cells
func SplitBar(usagePercentage float64, width int) (int, int) {
	if width <= 0 {
		return 0, 0
	}
	if math.IsNaN(usagePercentage) || usagePercentage < 0 {
		usagePercentage = 0
	}
	if usagePercentage > 100 {
		usagePercentage = 100
	}

	used := int(math.Round(usagePercentage / 100 * float64(width)))
	return used, width - used
}

// ExpiryLabel is the days-remaining line, with a top up hint near expiry
func ExpiryLabel(daysRemaining int, nearExpiry bool) string {
	unit := "days"
	if daysRemaining == 1 || daysRemaining == -1 {
		unit = "day"
	}

	label := fmt.Sprintf("Remaining: %d %s", daysRemaining, unit)
	if nearExpiry {
		label += " (please top up)"
	}
	return label
}

// UpdatedLabel is the footer with the local time of the payload
func UpdatedLabel(t time.Time) string {
	return "Updated: " + t.Format("15:04")
}

// FormatNumber prints a metric with the fewest digits that represent it
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
