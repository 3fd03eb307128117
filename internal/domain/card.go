package domain

import "time"

// ExpirationLayout is the naive local timestamp format used by the card operator
const ExpirationLayout = "2006-01-02 15:04:05"

// LedgerDateLayout is the calendar-day format stored in the notification ledger
const LedgerDateLayout = "2006-01-02"

// LastNotifyKey is the ledger key holding the last day an expiry alert was sent
const LastNotifyKey = "traffic_card_last_notify_date"

// DefaultNearExpiryDays is the days-remaining threshold that arms the expiry alert
const DefaultNearExpiryDays = 3

// CardSnapshot is the usage data returned by one successful fetch
type CardSnapshot struct {
	Card           string
	ExpirationTime string
	FreeMB         float64
	UsedMB         float64
}

// CardMetrics holds the display-ready values derived from a snapshot
type CardMetrics struct {
	DaysRemaining   int
	ExpiresAt       time.Time
	FreeGB          float64
	TotalGB         float64
	UsagePercentage float64
	UsedGB          float64
}

// LedgerDate formats t as the ledger's calendar-day string
func LedgerDate(t time.Time) string {
	return t.Format(LedgerDateLayout)
}
