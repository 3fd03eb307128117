package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{1.004, 1},
		{1.005, 1.01},
		{2.675, 2.68},
		{66.666666, 66.67},
		{33.333333, 33.33},
		{12.5, 12.5},
		{99.995, 100},
		{-1.005, -1.01},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RoundHalfUp(tt.input, 2), "RoundHalfUp(%v, 2)", tt.input)
	}
}

func TestRoundHalfUp_Idempotent(t *testing.T) {
	inputs := []float64{0.125, 1.005, 3.14159, 66.666666, 1234.5678, 0.0049, 99.995, 1e-9}

	for _, x := range inputs {
		once := RoundHalfUp(x, 2)
		assert.Equal(t, once, RoundHalfUp(once, 2), "input %v", x)
	}
}

func TestDerive_OutputsAreRoundingFixedPoints(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	counters := []float64{0, 1, 4.5, 5.115, 333.333, 1023.9, 1500.75, 2048, 7777.7777}

	for _, used := range counters {
		for _, free := range counters {
			snapshot := CardSnapshot{UsedMB: used, FreeMB: free, ExpirationTime: "2024-02-01 00:00:00"}

			metrics, err := Derive(snapshot, now)
			require.NoError(t, err)

			for name, v := range map[string]float64{
				"usedGB":          metrics.UsedGB,
				"freeGB":          metrics.FreeGB,
				"totalGB":         metrics.TotalGB,
				"usagePercentage": metrics.UsagePercentage,
			} {
				assert.Equal(t, v, RoundHalfUp(v, 2), "%s for used=%v free=%v", name, used, free)
			}
		}
	}
}

func TestDerive_EndToEndScenario(t *testing.T) {
	snapshot := CardSnapshot{
		Card:           "8986001234",
		UsedMB:         2048,
		FreeMB:         1024,
		ExpirationTime: "2024-01-01 00:00:00",
	}
	now := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)

	metrics, err := Derive(snapshot, now)

	require.NoError(t, err)
	assert.Equal(t, 2.0, metrics.UsedGB)
	assert.Equal(t, 1.0, metrics.FreeGB)
	assert.Equal(t, 3.0, metrics.TotalGB)
	assert.Equal(t, 66.67, metrics.UsagePercentage)
	assert.Equal(t, 2, metrics.DaysRemaining)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), metrics.ExpiresAt)
}

func TestDerive_TotalComputedBeforeRounding(t *testing.T) {
	// 0.004 GB each rounds to 0, the sum rounds to 0.01
	snapshot := CardSnapshot{UsedMB: 4.5, FreeMB: 4.5, ExpirationTime: "2030-01-01 00:00:00"}

	metrics, err := Derive(snapshot, time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.UsedGB)
	assert.Equal(t, 0.0, metrics.FreeGB)
	assert.Equal(t, 0.01, metrics.TotalGB)
}

func TestDerive_UsagePercentage(t *testing.T) {
	tests := []struct {
		used     float64
		free     float64
		expected float64
	}{
		{2048, 1024, 66.67},
		{1, 2, 33.33},
		{1, 7, 12.5},
		{123, 877, 12.3},
		{0, 5, 0},
		{5, 0, 100},
		{0, 0, 0},
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		snapshot := CardSnapshot{UsedMB: tt.used, FreeMB: tt.free, ExpirationTime: "2024-02-01 00:00:00"}

		metrics, err := Derive(snapshot, now)

		require.NoError(t, err)
		assert.Equal(t, tt.expected, metrics.UsagePercentage, "used=%v free=%v", tt.used, tt.free)
	}
}

func TestDerive_UsagePercentageMatchesFormula(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for used := 0.0; used <= 5000; used += 137 {
		for free := 1.0; free <= 5000; free += 251 {
			snapshot := CardSnapshot{UsedMB: used, FreeMB: free, ExpirationTime: "2024-02-01 00:00:00"}

			metrics, err := Derive(snapshot, now)
			require.NoError(t, err)

			expected := RoundHalfUp(used/(used+free)*100, 2)
			assert.InDelta(t, expected, metrics.UsagePercentage, 0.0100001, "used=%v free=%v", used, free)
			assert.GreaterOrEqual(t, metrics.UsagePercentage, 0.0)
			assert.LessOrEqual(t, metrics.UsagePercentage, 100.0)
		}
	}
}

func TestDerive_DaysRemaining(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration string
		expected   int
	}{
		{"exactly two days", "2024-03-12 12:00:00", 2},
		{"partial day rounds up", "2024-03-11 12:00:01", 2},
		{"later today", "2024-03-10 18:00:00", 1},
		{"right now", "2024-03-10 12:00:00", 0},
		{"expired a few hours ago", "2024-03-10 06:00:00", 0},
		{"expired a day and a half ago", "2024-03-09 00:00:00", -1},
		{"T separator", "2024-03-14T12:00:00", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, err := Derive(CardSnapshot{UsedMB: 1, FreeMB: 1, ExpirationTime: tt.expiration}, now)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, metrics.DaysRemaining)
		})
	}
}

func TestDerive_UsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)

	metrics, err := Derive(CardSnapshot{ExpirationTime: "2024-01-02 00:00:00"}, now)

	require.NoError(t, err)
	assert.Equal(t, 1, metrics.DaysRemaining)
	assert.Equal(t, loc, metrics.ExpiresAt.Location())
}

func TestDerive_InvalidInput(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		snapshot CardSnapshot
	}{
		{"malformed timestamp", CardSnapshot{UsedMB: 1, FreeMB: 1, ExpirationTime: "next tuesday"}},
		{"empty timestamp", CardSnapshot{UsedMB: 1, FreeMB: 1}},
		{"negative used", CardSnapshot{UsedMB: -1, FreeMB: 1, ExpirationTime: "2024-02-01 00:00:00"}},
		{"negative free", CardSnapshot{UsedMB: 1, FreeMB: -1, ExpirationTime: "2024-02-01 00:00:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.snapshot, now)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrComputation))
			assert.Equal(t, "computation", ErrorCause(err))
		})
	}
}

func TestLedgerDate(t *testing.T) {
	assert.Equal(t, "2023-12-30", LedgerDate(time.Date(2023, 12, 30, 23, 59, 0, 0, time.UTC)))
}
