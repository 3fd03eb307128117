package domain

import "time"

// Fixed texts of the single user-visible failure
const (
	FailureDetail  = "check network/credential"
	FailureMessage = "request failed"
)

// CardSummary is the success payload handed to the presenter
type CardSummary struct {
	Card            string  `json:"card"`
	DaysRemaining   int     `json:"daysRemaining"`
	FreeGB          float64 `json:"freeGB"`
	NearExpiry      bool    `json:"nearExpiry"`
	TotalGB         float64 `json:"totalGB"`
	UsagePercentage float64 `json:"usagePercentage"`
	UsedGB          float64 `json:"usedGB"`
}

// FailureNotice is the fixed error payload handed to the presenter
type FailureNotice struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// WidgetPayload is what the presenter renders: exactly one of Summary or Failure is set
type WidgetPayload struct {
	Failure   *FailureNotice
	Summary   *CardSummary
	UpdatedAt time.Time
}

// NewSummaryPayload builds a success payload from derived metrics
func NewSummaryPayload(card string, m CardMetrics, nearExpiry bool, updatedAt time.Time) WidgetPayload {
	return WidgetPayload{
		Summary: &CardSummary{
			Card:            card,
			DaysRemaining:   m.DaysRemaining,
			FreeGB:          m.FreeGB,
			NearExpiry:      nearExpiry,
			TotalGB:         m.TotalGB,
			UsagePercentage: m.UsagePercentage,
			UsedGB:          m.UsedGB,
		},
		UpdatedAt: updatedAt,
	}
}

// NewFailurePayload builds the fixed error payload
func NewFailurePayload(updatedAt time.Time) WidgetPayload {
	return WidgetPayload{
		Failure: &FailureNotice{
			Detail:  FailureDetail,
			Message: FailureMessage,
		},
		UpdatedAt: updatedAt,
	}
}

// Failed reports whether the payload is the error payload
func (p WidgetPayload) Failed() bool {
	return p.Failure != nil
}
