package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	megabytesPerGigabyte = decimal.NewFromInt(1024)
	hundred              = decimal.NewFromInt(100)
)

// displayPlaces is the number of decimals kept for every derived quantity
const displayPlaces = 2

// RoundHalfUp rounds x to the given number of decimal places, halves away from zero.
// Rounding is done on the shortest decimal representation of x so 1.005 becomes 1.01.
func RoundHalfUp(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return roundHalfUp(decimal.NewFromFloat(x), places)
}

// roundHalfUp is the single rounding step behind every derived quantity
func roundHalfUp(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}

// Derive converts a snapshot into display metrics relative to now.
// The expiration timestamp is interpreted in now's location.
func Derive(snapshot CardSnapshot, now time.Time) (CardMetrics, error) {
	used, err := megabytes("used", snapshot.UsedMB)
	if err != nil {
		return CardMetrics{}, err
	}
	free, err := megabytes("free", snapshot.FreeMB)
	if err != nil {
		return CardMetrics{}, err
	}

	expiresAt, err := ParseExpiration(snapshot.ExpirationTime, now.Location())
	if err != nil {
		return CardMetrics{}, err
	}

	total := used.Add(free)

	return CardMetrics{
		DaysRemaining:   DaysUntil(expiresAt, now),
		ExpiresAt:       expiresAt,
		FreeGB:          toGigabytes(free),
		TotalGB:         toGigabytes(total),
		UsagePercentage: usagePercentage(used, total),
		UsedGB:          toGigabytes(used),
	}, nil
}

// ParseExpiration parses the operator's naive "YYYY-MM-DD HH:MM:SS" timestamp in loc.
// A "T" separator is accepted as well.
func ParseExpiration(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	normalized := strings.Replace(strings.TrimSpace(value), "T", " ", 1)
	t, err := time.ParseInLocation(ExpirationLayout, normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid expiration time %q: %w", ErrComputation, value, err)
	}
	return t, nil
}

// DaysUntil returns the ceiling of (t - now) in whole days; negative once t has passed
func DaysUntil(t, now time.Time) int {
	days := math.Ceil(t.Sub(now).Hours() / 24)
	if days == 0 {
		// math.Ceil keeps the sign of -0.x
		return 0
	}
	return int(days)
}

func megabytes(name string, value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return decimal.Zero, fmt.Errorf("%w: invalid %s counter %v", ErrComputation, name, value)
	}
	return decimal.NewFromFloat(value), nil
}

func toGigabytes(mb decimal.Decimal) float64 {
	return roundHalfUp(mb.Div(megabytesPerGigabyte), displayPlaces)
}

// usagePercentage is 0 when the card has no capacity at all
func usagePercentage(used, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return roundHalfUp(used.Div(total).Mul(hundred), displayPlaces)
}
